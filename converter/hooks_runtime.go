package converter

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/rgonek/block-markdown-converter/inline"
)

func (s *state) applyLinkRenderHook(blockType string, input LinkRenderInput) (LinkRenderOutput, bool, error) {
	if s.config.LinkHook == nil {
		return LinkRenderOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return LinkRenderOutput{}, false, err
	}

	output, err := s.config.LinkHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return LinkRenderOutput{}, false, fmt.Errorf("unresolved link reference %q: %w", input.Href, err)
			}
			s.addWarning(
				WarningUnresolvedReference,
				blockType,
				fmt.Sprintf("unresolved link reference %q; keeping original target", input.Href),
			)
			return LinkRenderOutput{}, false, nil
		}
		return LinkRenderOutput{}, false, fmt.Errorf("link hook failed: %w", err)
	}

	if !output.Handled {
		return LinkRenderOutput{}, false, nil
	}

	output.Href = strings.TrimSpace(output.Href)
	if output.Href == "" {
		return LinkRenderOutput{}, false, errors.New("invalid link hook output: handled link requires non-empty href")
	}

	return output, true, nil
}

func (s *state) applyImageRenderHook(blockType string, input ImageRenderInput) (ImageRenderOutput, bool, error) {
	if s.config.ImageHook == nil {
		return ImageRenderOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return ImageRenderOutput{}, false, err
	}

	output, err := s.config.ImageHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			reference := input.Meta.MediaID
			if reference == "" {
				reference = input.URL
			}
			if s.config.ResolutionMode == ResolutionStrict {
				return ImageRenderOutput{}, false, fmt.Errorf("unresolved image reference %q: %w", reference, err)
			}
			s.addWarning(
				WarningUnresolvedReference,
				blockType,
				fmt.Sprintf("unresolved image reference %q; keeping original source", reference),
			)
			return ImageRenderOutput{}, false, nil
		}
		return ImageRenderOutput{}, false, fmt.Errorf("image hook failed: %w", err)
	}

	if !output.Handled {
		return ImageRenderOutput{}, false, nil
	}

	output.URL = strings.TrimSpace(output.URL)
	if output.URL == "" {
		return ImageRenderOutput{}, false, errors.New("invalid image hook output: handled image requires non-empty url")
	}

	return output, true, nil
}

// inlineResolver adapts the link and image hooks to inline.URLResolver. The
// resolver cannot fail, so the first hook error is kept on the state and
// reported once the block finishes rendering.
func (s *state) inlineResolver(block Block) inline.URLResolver {
	if s.config.LinkHook == nil && s.config.ImageHook == nil {
		return nil
	}

	return func(kind inline.URLKind, ref, text string) string {
		if s.hookErr != nil {
			return ref
		}

		switch kind {
		case inline.URLImage:
			out, ok, err := s.applyImageRenderHook(block.Type, ImageRenderInput{
				SourcePath: s.options.SourcePath,
				BlockType:  block.Type,
				URL:        ref,
				Alt:        text,
				Meta:       referenceMetadata(nil, ref),
			})
			if err != nil {
				s.hookErr = err
				return ref
			}
			if ok {
				return out.URL
			}
		default:
			out, ok, err := s.applyLinkRenderHook(block.Type, LinkRenderInput{
				SourcePath: s.options.SourcePath,
				BlockType:  block.Type,
				Href:       ref,
				Text:       text,
				Meta:       referenceMetadata(nil, ref),
			})
			if err != nil {
				s.hookErr = err
				return ref
			}
			if ok {
				return out.Href
			}
		}
		return ref
	}
}

func referenceMetadata(attrs map[string]any, reference string) ReferenceMetadata {
	filename, anchor := parseReferenceDetails(reference)

	meta := ReferenceMetadata{
		MediaID:  lookupMetadataValue(attrs, "id", "mediaId", "attachmentId"),
		Filename: lookupMetadataValue(attrs, "filename", "fileName", "name"),
		Anchor:   lookupMetadataValue(attrs, "anchor", "fragment"),
	}

	if meta.Filename == "" {
		meta.Filename = filename
	}
	if meta.Anchor == "" {
		meta.Anchor = anchor
	}

	return meta
}

func lookupMetadataValue(attrs map[string]any, candidates ...string) string {
	if len(attrs) == 0 {
		return ""
	}

	for _, candidate := range candidates {
		normalized := normalizeMetadataKey(candidate)
		for key, raw := range attrs {
			if normalizeMetadataKey(key) != normalized {
				continue
			}
			value := strings.TrimSpace(Block{Attributes: attrs}.StringAttr(key, ""))
			if raw != nil && value != "" {
				return value
			}
		}
	}

	return ""
}

func normalizeMetadataKey(key string) string {
	normalized := strings.ToLower(strings.TrimSpace(key))
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return normalized
}

// ReferenceDetails derives the filename and anchor of a link or image reference.
func ReferenceDetails(reference string) ReferenceMetadata {
	filename, anchor := parseReferenceDetails(reference)
	return ReferenceMetadata{Filename: filename, Anchor: anchor}
}

func parseReferenceDetails(reference string) (string, string) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return "", ""
	}

	anchor := ""
	referencePath := reference
	if parsed, err := url.Parse(reference); err == nil {
		anchor = strings.TrimSpace(parsed.Fragment)
		referencePath = parsed.Path
	} else if hashIndex := strings.LastIndex(reference, "#"); hashIndex >= 0 {
		anchor = strings.TrimSpace(reference[hashIndex+1:])
		referencePath = reference[:hashIndex]
	}

	referencePath = strings.TrimRight(strings.ReplaceAll(referencePath, "\\", "/"), "/")
	if referencePath == "" {
		return "", anchor
	}

	filename := strings.TrimSpace(path.Base(referencePath))
	if filename == "." || filename == "/" {
		filename = ""
	}

	return filename, anchor
}

func cloneAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = cloneAnyValue(value)
	}

	return dst
}

func cloneAnyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneAnyMap(typed)
	case []any:
		cloned := make([]any, len(typed))
		for index := range typed {
			cloned[index] = cloneAnyValue(typed[index])
		}
		return cloned
	default:
		return value
	}
}
