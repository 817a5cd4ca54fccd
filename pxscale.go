// Package pxscale generates a desktop high-density override stylesheet that
// scales every px dimension of a project's stylesheets by a constant factor.
//
// The original stylesheets are never modified. The generated file wraps the
// scaled copies of changed rules in a single activation @media block, so
// deleting it (or the link to it) is a full rollback.
//
// # Generation
//
//	config := pxscale.DefaultConfig()
//	config.Root = "."
//	config.Apply = true
//	result, err := pxscale.Generate(config, nil)
//
// # CI gate
//
// Check produces the document in memory and returns ErrOutputStale when the
// file on disk differs:
//
//	if _, err := pxscale.Check(config, nil); errors.Is(err, pxscale.ErrOutputStale) {
//		// regenerate
//	}
//
// # CLI Tool
//
// Install with:
//
//	go install github.com/yacobolo/pxscale/cmd/pxscale@latest
package pxscale
