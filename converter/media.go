package converter

import "fmt"

// renderImage prefers the url and alt attributes and falls back to the first
// img element of the body. A block without any URL renders as nothing.
func (s *state) renderImage(block Block) (string, error) {
	url := block.StringAttr("url", "")
	alt := block.StringAttr("alt", "")
	if url == "" {
		img := firstImage(parseFragment(block.Body()))
		url = nodeAttr(img, "src")
		if !block.HasAttr("alt") {
			alt = nodeAttr(img, "alt")
		}
	}

	if url == "" {
		s.addWarning(WarningMissingAttribute, block.Type, "image block has no url; skipped")
		return "", nil
	}

	hookOutput, handled, err := s.applyImageRenderHook(
		block.Type,
		ImageRenderInput{
			SourcePath: s.options.SourcePath,
			BlockType:  block.Type,
			URL:        url,
			Alt:        alt,
			Meta:       referenceMetadata(block.Attributes, url),
			Attrs:      cloneAnyMap(block.Attributes),
		},
	)
	if err != nil {
		return "", err
	}
	if handled {
		url = hookOutput.URL
		if hookOutput.Alt != "" {
			alt = hookOutput.Alt
		}
	}

	return fmt.Sprintf("![%s](%s)", alt, url), nil
}
