package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"

	"github.com/gin-contrib/multitemplate"
)

// views maps the name handlers render to its file under templates/views.
var views = map[string]string{
	"home.html":        "home.html",
	"post/detail.html": "post/detail.html",
	"error.html":       "error.html",
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"year": func() int {
			return time.Now().Year()
		},
	}
}

// LoadTemplates parses every view together with the shared layout, includes and
// components, keyed by the name handlers pass to c.HTML.
func LoadTemplates(assets fs.FS) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	var shared []string
	for _, dir := range []string{"layouts", "includes", "components"} {
		files, err := fs.Glob(assets, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		shared = append(shared, files...)
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("no layout templates found")
	}

	fm := funcMap()
	for name, file := range views {
		files := append(append([]string{}, shared...), "templates/views/"+file)
		// The layout is the first file, so it is the template that executes.
		tmpl, err := template.New(path.Base(files[0])).Funcs(fm).ParseFS(assets, files...)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.Add(name, tmpl)
	}

	return r, nil
}
