package render

import (
	"errors"
	"fmt"

	"matrix-render/internal/event"
)

var (
	// ErrContractViolation reports an event that breaks an upstream guarantee,
	// such as media content with neither a url nor an encrypted file.
	ErrContractViolation = errors.New("contract violation")
	// ErrUnsupportedEvent reports an event or message kind with no renderer.
	// It is the same sentinel the decoder returns for unknown wire types.
	ErrUnsupportedEvent = event.ErrUnsupportedEvent
)

// HasFormattedBody is implemented by contents carrying a mandatory plain body
// and an optional formatted one (text, emote, notice).
type HasFormattedBody interface {
	PlainBody() string
	Formatted() (string, bool)
}

// ResolveBody returns the formatted body when present, else the plain body.
// The formatted body is passed through verbatim.
func ResolveBody(c HasFormattedBody) string {
	if formatted, ok := c.Formatted(); ok {
		return formatted
	}
	return c.PlainBody()
}

// HasURLOrFile is implemented by contents that reference uploaded media
// either directly or through an encrypted file (audio, file, image, video).
type HasURLOrFile interface {
	DirectURL() (string, bool)
	EncryptedURL() (string, bool)
}

// ResolveURL returns the direct url when present, else the encrypted file's url.
// One of both must exist; if neither does the content is rejected with
// ErrContractViolation instead of yielding an empty locator.
func ResolveURL(c HasURLOrFile) (string, error) {
	if url, ok := c.DirectURL(); ok {
		return url, nil
	}
	if url, ok := c.EncryptedURL(); ok {
		return url, nil
	}
	return "", fmt.Errorf("%w: media content has neither url nor file", ErrContractViolation)
}
