package tools

// Default returns a registry holding every toolkit operation.
func Default() *Registry {
	r := NewRegistry()
	groups := [][]*Tool{
		fileTools(),
		folderTools(),
		metadataTools(),
		aiTools(),
		taskTools(),
		sharedLinkTools(),
		hubTools(),
		docgenTools(),
		searchTools(),
	}
	for _, g := range groups {
		if err := r.Register(g...); err != nil {
			panic(err)
		}
	}
	return r
}
