package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
)

func funcMap(siteName string) template.FuncMap {
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
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
		"has": func(list []string, s string) bool {
			for _, v := range list {
				if v == s {
					return true
				}
			}
			return false
		},
		"siteName": func() string {
			return siteName
		},
	}
}

// LoadTemplates builds one template set per view: layouts and includes plus the view.
func LoadTemplates(templatesDir, siteName string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}
	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		return append(files, filepath.Join(templatesDir, "views", view))
	}

	funcs := funcMap(siteName)
	for _, view := range []string{
		"home.html",
		"blog/list.html",
		"blog/detail.html",
		"error.html",
	} {
		r.AddFromFilesFuncs(view, funcs, assemble(view)...)
	}
	return r
}
