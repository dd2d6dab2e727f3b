// internal/interfaces/http/handlers/render.go
package handlers

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/domain/pricing"
	"github.com/luxfakia/storefront/internal/pkg/i18n"
)

// Renderer writes a named view with its view model
type Renderer interface {
	Render(c *gin.Context, status int, view string, data gin.H)
}

// JSONRenderer writes the view model as JSON. It is the default when no
// template directory is configured.
type JSONRenderer struct{}

// Render implements Renderer
func (JSONRenderer) Render(c *gin.Context, status int, view string, data gin.H) {
	c.JSON(status, gin.H{
		"view": view,
		"data": data,
	})
}

// HTMLRenderer renders gin HTML templates named <view>.html
type HTMLRenderer struct{}

// Render implements Renderer
func (HTMLRenderer) Render(c *gin.Context, status int, view string, data gin.H) {
	c.HTML(status, view+".html", data)
}

// LoadTemplates installs the template helpers and parses every *.html
// file in dir into engine
func LoadTemplates(engine *gin.Engine, dir string) error {
	pattern := filepath.Join(dir, "*.html")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates match %s", pattern)
	}
	engine.SetFuncMap(TemplateFuncs())
	engine.LoadHTMLFiles(files...)
	return nil
}

// TemplateFuncs are the helpers available to HTML views
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"t":   i18n.T,
		"tf":  i18n.Tf,
		"dir": i18n.Dir,
		"money": func(v float64) string {
			return strconv.FormatFloat(pricing.RoundMoney(v), 'f', 2, 64)
		},
		"qty": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
	}
}
