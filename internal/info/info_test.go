package info

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/proofreader/internal/quality"
)

func testInfo() *Info {
	categories := quality.DefaultCategories()
	categories[quality.Validated] = "Validé"
	return New(Namespace{ID: 252, Name: "Index"}, Namespace{ID: 250, Name: "Page"}, categories)
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name           string
		props          []string
		wantNamespaces bool
		wantLevels     bool
	}{
		{name: "default is everything", props: nil, wantNamespaces: true, wantLevels: true},
		{name: "namespaces only", props: []string{PropNamespaces}, wantNamespaces: true},
		{name: "quality levels only", props: []string{PropQualityLevels}, wantLevels: true},
		{name: "both", props: []string{PropQualityLevels, PropNamespaces}, wantNamespaces: true, wantLevels: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := testInfo().Query(tt.props)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespaces, result.Namespaces != nil)
			assert.Equal(t, tt.wantLevels, result.QualityLevels != nil)
		})
	}
}

func TestQueryContent(t *testing.T) {
	result, err := testInfo().Query(nil)
	require.NoError(t, err)

	assert.Equal(t, Namespace{ID: 252, Name: "Index"}, result.Namespaces.Index)
	assert.Equal(t, Namespace{ID: 250, Name: "Page"}, result.Namespaces.Page)

	require.Len(t, result.QualityLevels, 5)
	assert.Equal(t, QualityLevel{ID: 0, Category: "Without text"}, result.QualityLevels[0])
	assert.Equal(t, QualityLevel{ID: 4, Category: "Validé"}, result.QualityLevels[4])
}

func TestQueryUnknownProp(t *testing.T) {
	_, err := testInfo().Query([]string{"namespaces", "bogus"})
	assert.ErrorIs(t, err, ErrUnknownProp)
}

func TestParseProps(t *testing.T) {
	assert.Equal(t, []string{"namespaces", "qualitylevels"}, ParseProps("namespaces|qualitylevels"))
	assert.Equal(t, []string{"namespaces"}, ParseProps(" namespaces | "))
	assert.Nil(t, ParseProps(""))
}

func TestNewDefaultsCategories(t *testing.T) {
	result, err := New(Namespace{}, Namespace{}, nil).Query([]string{PropQualityLevels})
	require.NoError(t, err)
	assert.Equal(t, "Proofread", result.QualityLevels[3].Category)
}
