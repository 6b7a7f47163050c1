package info

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/proofreader/internal/quality"
)

// ErrUnknownProp is returned for a requested prop that does not exist.
var ErrUnknownProp = errors.New("unknown prop")

const (
	PropNamespaces    = "namespaces"
	PropQualityLevels = "qualitylevels"
)

// Props lists every prop in output order.
func Props() []string {
	return []string{PropNamespaces, PropQualityLevels}
}

// Namespace is a wiki namespace as the client sees it
type Namespace struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Namespaces struct {
	Index Namespace `json:"index" yaml:"index"`
	Page  Namespace `json:"page" yaml:"page"`
}

type QualityLevel struct {
	ID       int    `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`
}

// Result holds the requested props; the others are left empty.
type Result struct {
	Namespaces    *Namespaces    `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	QualityLevels []QualityLevel `json:"qualitylevels,omitempty" yaml:"qualitylevels,omitempty"`
}

// Info answers the proofreading meta query
type Info struct {
	namespaces Namespaces
	categories quality.Categories
}

func New(index, page Namespace, categories quality.Categories) *Info {
	if categories == nil {
		categories = quality.DefaultCategories()
	}
	return &Info{
		namespaces: Namespaces{Index: index, Page: page},
		categories: categories,
	}
}

// Query returns the requested props. No props means all of them.
func (i *Info) Query(props []string) (*Result, error) {
	if len(props) == 0 {
		props = Props()
	}

	result := &Result{}
	for _, prop := range props {
		switch prop {
		case PropNamespaces:
			ns := i.namespaces
			result.Namespaces = &ns
		case PropQualityLevels:
			result.QualityLevels = make([]QualityLevel, 0, len(quality.Levels()))
			for _, l := range quality.Levels() {
				result.QualityLevels = append(result.QualityLevels, QualityLevel{
					ID:       int(l),
					Category: i.categories.Label(l),
				})
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownProp, prop)
		}
	}
	return result, nil
}

// ParseProps splits a "namespaces|qualitylevels" prop list.
func ParseProps(s string) []string {
	var props []string
	for _, p := range strings.Split(s, "|") {
		if p = strings.TrimSpace(p); p != "" {
			props = append(props, p)
		}
	}
	return props
}
