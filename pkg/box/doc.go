// Package box is a small client for the Box Content API.
//
// # Overview
//
// A Client wraps an oauth2.TokenSource and issues JSON requests against
// api.box.com and upload.box.com. Resource methods return typed structs
// (File, Folder, MetadataTemplate, Hub, ...) and Box errors are returned
// as *APIError.
//
// Requests rejected with 429 or 5xx are retried with exponential backoff,
// honoring Retry-After. No other retry happens anywhere in this module.
//
// # Authentication
//
//   - DeveloperToken: a static token from the developer console.
//   - CCGConfig: client credentials grant for a service account or user.
//   - OAuthConfig with AuthorizeApp and OAuthTokenSource: three-legged
//     OAuth with a loopback redirect and a FileTokenStore.
//   - JWTConfig: server authentication with an RSA key pair.
//
// # Example
//
//	ts, err := box.CCGConfig{
//		ClientID:     os.Getenv("BOX_CLIENT_ID"),
//		ClientSecret: os.Getenv("BOX_CLIENT_SECRET"),
//		SubjectType:  box.SubjectEnterprise,
//		SubjectID:    os.Getenv("BOX_ENTERPRISE_ID"),
//	}.TokenSource(ctx, nil)
//	if err != nil {
//		return err
//	}
//	client, err := box.New(nil, ts, box.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	file, err := client.GetFile(ctx, "12345")
package box
