// Package richtext turns Portable Text style block bodies into HTML.
package richtext

import (
	"html/template"
	"strings"

	"inkwell/internal/logger"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// ImageResolver maps an image asset reference to a URL.
type ImageResolver interface {
	RefURL(ref string) string
}

type Renderer struct {
	serializers Serializers
	images      ImageResolver
	log         *logger.Logger
}

// NewRenderer layers overrides on top of the default serializers.
func NewRenderer(images ImageResolver, log *logger.Logger, overrides Serializers) *Renderer {
	s := DefaultSerializers()
	for k, v := range overrides {
		s[k] = v
	}
	return &Renderer{serializers: s, images: images, log: log}
}

// Render converts blocks to sanitized HTML. Malformed blocks render as best they can.
func (r *Renderer) Render(blocks []models.Block) template.HTML {
	var b strings.Builder
	for i := 0; i < len(blocks); {
		if blocks[i].Type == "block" && blocks[i].ListItem != "" {
			end := i
			for end < len(blocks) && blocks[end].Type == "block" && blocks[end].ListItem != "" {
				end++
			}
			b.WriteString(string(r.renderList(blocks[i:end], levelOf(blocks[i]))))
			i = end
			continue
		}
		b.WriteString(string(r.renderBlock(blocks[i])))
		i++
	}

	return utils.EnhanceHTMLContent(utils.SanitizeHTML(b.String()))
}

func levelOf(b models.Block) int {
	if b.Level < 1 {
		return 1
	}
	return b.Level
}

// renderList renders consecutive list items at one nesting level. Deeper items are
// nested inside the preceding item; a change of list kind starts a new list.
func (r *Renderer) renderList(items []models.Block, level int) template.HTML {
	var out strings.Builder
	var listItems strings.Builder
	kind := ""

	flush := func() {
		if kind == "" {
			return
		}
		out.WriteString(string(r.serializer(kind, "bullet")(Props{Children: template.HTML(listItems.String())})))
		listItems.Reset()
	}

	for i := 0; i < len(items); {
		item := items[i]
		if levelOf(item) > level {
			// Orphaned deeper items with no parent at this level.
			if kind == "" {
				kind = item.ListItem
			}
			end := i
			for end < len(items) && levelOf(items[end]) > level {
				end++
			}
			listItems.WriteString(string(r.serializer("li", "")(Props{Children: r.renderList(items[i:end], level+1)})))
			i = end
			continue
		}

		if item.ListItem != kind {
			flush()
			kind = item.ListItem
		}

		children := r.renderSpans(item)
		end := i + 1
		for end < len(items) && levelOf(items[end]) > level {
			end++
		}
		if end > i+1 {
			children += r.renderList(items[i+1:end], level+1)
		}
		listItems.WriteString(string(r.serializer("li", "")(Props{Children: children, Block: item})))
		i = end
	}
	flush()

	return template.HTML(out.String())
}

func (r *Renderer) renderBlock(block models.Block) template.HTML {
	switch block.Type {
	case "block":
		style := block.Style
		if style == "" {
			style = "normal"
		}
		s, ok := r.serializers[style]
		if !ok {
			r.log.Warn("richtext: unknown block style %q, rendering as paragraph", style)
			s = r.serializers["normal"]
		}
		return s(Props{Children: r.renderSpans(block), Block: block})
	case "image":
		return r.serializer("image", UnknownType)(Props{Block: block, ImageURL: r.images.RefURL(block.Asset.Ref)})
	default:
		s, ok := r.serializers[block.Type]
		if !ok {
			r.log.Warn("richtext: no serializer for block type %q", block.Type)
			s = r.serializers[UnknownType]
		}
		return s(Props{Children: r.renderSpans(block), Block: block})
	}
}

func (r *Renderer) renderSpans(block models.Block) template.HTML {
	defs := make(map[string]models.MarkDef, len(block.MarkDefs))
	for _, d := range block.MarkDefs {
		defs[d.Key] = d
	}

	var b strings.Builder
	for _, span := range block.Children {
		text := template.HTMLEscapeString(span.Text)
		html := template.HTML(strings.ReplaceAll(text, "\n", "<br/>"))

		// The first mark ends up outermost.
		for i := len(span.Marks) - 1; i >= 0; i-- {
			html = r.renderMark(span.Marks[i], defs, html)
		}
		b.WriteString(string(html))
	}
	return template.HTML(b.String())
}

func (r *Renderer) renderMark(mark string, defs map[string]models.MarkDef, children template.HTML) template.HTML {
	if def, ok := defs[mark]; ok {
		return r.serializer(def.Type, UnknownMark)(Props{Children: children, Href: def.Href})
	}
	return r.serializer(mark, UnknownMark)(Props{Children: children})
}

func (r *Renderer) serializer(key, fallback string) Serializer {
	if s, ok := r.serializers[key]; ok {
		return s
	}
	if s, ok := r.serializers[fallback]; ok {
		return s
	}
	return r.serializers[UnknownType]
}
