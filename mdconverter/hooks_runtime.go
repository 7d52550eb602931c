package mdconverter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/block-markdown-converter/converter"
	"github.com/rgonek/block-markdown-converter/inline"
)

func (s *state) applyLinkParseHook(input LinkParseInput) (LinkParseOutput, bool, error) {
	if s.config.LinkHook == nil {
		return LinkParseOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return LinkParseOutput{}, false, err
	}

	output, err := s.config.LinkHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return LinkParseOutput{}, false, fmt.Errorf("unresolved link destination %q: %w", input.Destination, err)
			}
			s.addWarning(
				converter.WarningUnresolvedReference,
				input.BlockType,
				fmt.Sprintf("unresolved link destination %q; keeping original destination", input.Destination),
			)
			return LinkParseOutput{}, false, nil
		}
		return LinkParseOutput{}, false, fmt.Errorf("link hook failed: %w", err)
	}

	if !output.Handled {
		return LinkParseOutput{}, false, nil
	}

	output.Destination = strings.TrimSpace(output.Destination)
	if output.Destination == "" {
		return LinkParseOutput{}, false, errors.New("invalid link hook output: handled link requires non-empty destination")
	}

	return output, true, nil
}

func (s *state) applyImageParseHook(input ImageParseInput) (ImageParseOutput, bool, error) {
	if s.config.ImageHook == nil {
		return ImageParseOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return ImageParseOutput{}, false, err
	}

	output, err := s.config.ImageHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return ImageParseOutput{}, false, fmt.Errorf("unresolved image destination %q: %w", input.Destination, err)
			}
			s.addWarning(
				converter.WarningUnresolvedReference,
				input.BlockType,
				fmt.Sprintf("unresolved image destination %q; keeping original destination", input.Destination),
			)
			return ImageParseOutput{}, false, nil
		}
		return ImageParseOutput{}, false, fmt.Errorf("image hook failed: %w", err)
	}

	if !output.Handled {
		return ImageParseOutput{}, false, nil
	}

	output.Destination = strings.TrimSpace(output.Destination)
	if output.Destination == "" {
		return ImageParseOutput{}, false, errors.New("invalid image hook output: handled image requires non-empty destination")
	}

	return output, true, nil
}

// inlineHTML formats text for a block of the given name, passing link and
// image destinations through the configured hooks. The first hook error is
// kept on the state and ends the conversion after the current line.
func (s *state) inlineHTML(name, text string) string {
	if s.config.LinkHook == nil && s.config.ImageHook == nil {
		return inline.ToHTML(text)
	}

	blockType := converter.QualifiedType(s.config.Namespace, name)
	return inline.ToHTMLResolved(text, func(kind inline.URLKind, dest, label string) string {
		if s.hookErr != nil {
			return dest
		}

		if kind == inline.URLImage {
			out, ok, err := s.applyImageParseHook(ImageParseInput{
				SourcePath:  s.options.SourcePath,
				BlockType:   blockType,
				Destination: dest,
				Alt:         label,
				Meta:        converter.ReferenceDetails(dest),
			})
			if err != nil {
				s.hookErr = err
				return dest
			}
			if ok {
				return out.Destination
			}
			return dest
		}

		out, ok, err := s.applyLinkParseHook(LinkParseInput{
			SourcePath:  s.options.SourcePath,
			BlockType:   blockType,
			Destination: dest,
			Text:        label,
			Meta:        converter.ReferenceDetails(dest),
		})
		if err != nil {
			s.hookErr = err
			return dest
		}
		if ok {
			return out.Destination
		}
		return dest
	})
}
