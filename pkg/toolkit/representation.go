package toolkit

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// RepresentationPollInterval is how long FileTextExtract waits before
// checking again on a representation that is still being generated.
var RepresentationPollInterval = 5 * time.Second

const (
	representationMarkdown      = "markdown"
	representationExtractedText = "extracted_text"
)

// FileTextExtract returns the text of a file. The markdown representation
// is preferred; extracted_text is used when markdown cannot be produced.
//
// Representation states that describe the file rather than a failed call
// are reported in the result as {"error": ..., "status": ...}.
func FileTextExtract(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "FileTextExtract"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	result, err := processRepresentation(ctx, client, op, representationMarkdown, fileID, false)
	if err != nil {
		return nil, err
	}
	switch result["status"] {
	case box.RepresentationImpossible, box.RepresentationError, box.RepresentationUnknown:
		client.Logger().Debug("markdown not available, falling back",
			"file_id", fileID, "status", result["status"])
		return processRepresentation(ctx, client, op, representationExtractedText, fileID, false)
	}
	return result, nil
}

func processRepresentation(
	ctx context.Context, client *box.Client, op, kind, fileID string, recheck bool,
) (map[string]any, error) {
	file, err := client.GetFileRepresentations(ctx, fileID, "["+kind+"]")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}

	state := box.RepresentationImpossible
	var rep box.Representation
	if file.Representations != nil && len(file.Representations.Entries) > 0 {
		rep = file.Representations.Entries[0]
		if rep.Status.State != "" {
			state = rep.Status.State
		}
	} else {
		client.Logger().Warn("representation not offered", "file_id", fileID, "representation", kind)
	}

	switch state {
	case box.RepresentationNone, box.RepresentationPending:
		if state == box.RepresentationNone {
			if err := client.RequestRepresentation(ctx, rep); err != nil {
				return nil, apiFailure(client, op, err)
			}
		}
		if !recheck {
			if err := sleep(ctx, RepresentationPollInterval); err != nil {
				return nil, &Error{Op: op, Err: err}
			}
			return processRepresentation(ctx, client, op, kind, fileID, true)
		}
		if state == box.RepresentationNone {
			return map[string]any{
				"message": fmt.Sprintf("%s representation generation requested.", kind),
				"status":  state,
			}, nil
		}
		return map[string]any{
			"message": fmt.Sprintf("%s representation is still being generated. Please try again later.", kind),
			"status":  state,
		}, nil

	case box.RepresentationSuccess:
		if rep.Content.URLTemplate == "" {
			return map[string]any{
				"error":  "No URL provided for representation download.",
				"status": state,
			}, nil
		}
		content, _, err := client.Download(ctx, rep.AssetURL())
		if err != nil {
			return nil, apiFailure(client, op, err)
		}
		return map[string]any{"content": string(content)}, nil

	case box.RepresentationError:
		return map[string]any{
			"error":  fmt.Sprintf("Error generating %s representation.", kind),
			"status": state,
		}, nil

	case box.RepresentationImpossible:
		return map[string]any{
			"error":  fmt.Sprintf("%s representation is impossible for this file.", kind),
			"status": state,
		}, nil
	}

	return map[string]any{
		"error":  fmt.Sprintf("Unknown status for %s representation.", kind),
		"status": box.RepresentationUnknown,
	}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
