package richtext

import (
	"fmt"
	"html/template"

	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// Props is what a serializer gets to work with. Children is already rendered.
type Props struct {
	Children template.HTML
	Href     string
	ImageURL string
	Block    models.Block
}

// Serializer renders one node of a body: a block style, a list, a list item, a mark or a block type.
type Serializer func(p Props) template.HTML

// Serializers is keyed by style ("normal", "h1", "blockquote"), list kind ("bullet",
// "number"), "li", mark or annotation type ("strong", "link") and block type ("image", "markdown").
type Serializers map[string]Serializer

// Fallback keys used when nothing more specific matches.
const (
	UnknownType = "unknownType"
	UnknownMark = "unknownMark"
)

func wrap(tag string) Serializer {
	return func(p Props) template.HTML {
		return template.HTML(fmt.Sprintf("<%s>%s</%s>", tag, p.Children, tag))
	}
}

// DefaultSerializers returns the built-in renderers.
func DefaultSerializers() Serializers {
	return Serializers{
		"normal":     wrap("p"),
		"h1":         wrap("h1"),
		"h2":         wrap("h2"),
		"h3":         wrap("h3"),
		"h4":         wrap("h4"),
		"h5":         wrap("h5"),
		"h6":         wrap("h6"),
		"blockquote": wrap("blockquote"),

		"bullet": wrap("ul"),
		"number": wrap("ol"),
		"li":     wrap("li"),

		"strong":         wrap("strong"),
		"em":             wrap("em"),
		"code":           wrap("code"),
		"underline":      wrap("u"),
		"strike-through": wrap("del"),
		"link": func(p Props) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="%s">%s</a>`, template.HTMLEscapeString(p.Href), p.Children))
		},
		UnknownMark: wrap("span"),

		"image": func(p Props) template.HTML {
			if p.ImageURL == "" {
				return ""
			}
			return template.HTML(fmt.Sprintf(`<figure><img src="%s" alt="%s"/></figure>`,
				template.HTMLEscapeString(p.ImageURL), template.HTMLEscapeString(p.Block.Alt)))
		},
		"markdown": func(p Props) template.HTML {
			return utils.RenderMarkdown(p.Block.Markdown)
		},
		UnknownType: func(p Props) template.HTML {
			if p.Children == "" {
				return ""
			}
			return template.HTML(fmt.Sprintf("<div>%s</div>", p.Children))
		},
	}
}

// PostSerializers are the overrides used on post pages: both heading levels render
// as the same large heading, list items get bullets and links get the accent colour.
func PostSerializers() Serializers {
	heading := func(p Props) template.HTML {
		return template.HTML(fmt.Sprintf(`<h1 class="text-2xl font-bold my-5">%s</h1>`, p.Children))
	}
	return Serializers{
		"h1": heading,
		"h2": heading,
		"li": func(p Props) template.HTML {
			return template.HTML(fmt.Sprintf(`<li class="ml-4 list-disc">%s</li>`, p.Children))
		},
		"link": func(p Props) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="%s" class="text-blue-500 hover:underline">%s</a>`,
				template.HTMLEscapeString(p.Href), p.Children))
		},
	}
}
