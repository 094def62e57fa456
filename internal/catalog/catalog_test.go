package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/party-share/internal/catalog"
	"github.com/KirkDiggler/party-share/internal/domain/party"
	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

const yamlCatalog = `characters:
  - name: i_ch2
    image: ./image/character/i_ch2.png
  - name: i_ch1
    attribute: 呪術師
    image: ./image/character/i_ch1.png
  - name: no-image
remnants:
  - name: zanshi1
    image: ./image/zanshi/zanshi1.png
`

const jsonCatalog = `{
  "characters": [{"name": "b", "image": "b.png"}, {"name": "A", "image": "a.png"}, {"name": "c", "image": "c.png"}],
  "remnants": []
}`

type failingSource struct{}

func (failingSource) Fetch(context.Context) (*catalog.Document, error) {
	return nil, errors.New("HTTP 404: Not Found")
}

type staticSource struct{ doc *catalog.Document }

func (s staticSource) Fetch(context.Context) (*catalog.Document, error) { return s.doc, nil }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalog_LoadYAMLFile(t *testing.T) {
	cat := catalog.New(&catalog.Config{
		Sources: []catalog.Source{&catalog.FileSource{Path: writeFile(t, "catalog.yaml", yamlCatalog)}},
	})

	require.NoError(t, cat.Load(context.Background()))
	assert.True(t, cat.Loaded())

	characters := cat.Items(party.CategoryCharacter)
	require.Len(t, characters, 2, "entries without an image are dropped")
	assert.Equal(t, "i_ch1", characters[0].Name)
	assert.Equal(t, "呪術師", characters[0].Attribute)
	assert.Equal(t, "i_ch2", characters[1].Name)

	item, err := cat.Lookup(party.CategoryRemnant, "zanshi1")
	require.NoError(t, err)
	assert.Equal(t, "./image/zanshi/zanshi1.png", item.ImageRef)

	_, err = cat.Lookup(party.CategoryRemnant, "i_ch1")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestCatalog_CollatedOrder(t *testing.T) {
	cat := catalog.New(&catalog.Config{
		Sources:  []catalog.Source{&catalog.FileSource{Path: writeFile(t, "catalog.json", jsonCatalog)}},
		Language: language.English,
	})

	require.NoError(t, cat.Load(context.Background()))

	var names []string
	for _, item := range cat.Items(party.CategoryCharacter) {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"A", "b", "c"}, names)
}

func TestCatalog_MergesSourcesFirstWins(t *testing.T) {
	first := &catalog.Document{Characters: []party.Item{{Name: "A", ImageRef: "first.png"}}}
	second := &catalog.Document{Characters: []party.Item{{Name: "A", ImageRef: "second.png"}, {Name: "B", ImageRef: "b.png"}}}
	cat := catalog.New(&catalog.Config{Sources: []catalog.Source{staticSource{first}, staticSource{second}}})

	require.NoError(t, cat.Load(context.Background()))

	items := cat.Items(party.CategoryCharacter)
	require.Len(t, items, 2)
	assert.Equal(t, "first.png", items[0].ImageRef)
}

func TestCatalog_LoadFailureLeavesEmptyPool(t *testing.T) {
	good := staticSource{&catalog.Document{Characters: []party.Item{{Name: "A", ImageRef: "a.png"}}}}
	cat := catalog.New(&catalog.Config{Sources: []catalog.Source{good, failingSource{}}})

	err := cat.Load(context.Background())

	assert.True(t, dnderr.IsCatalogUnavailable(err))
	assert.False(t, cat.Loaded())
	assert.Empty(t, cat.Items(party.CategoryCharacter))
}

func TestCatalog_NoSources(t *testing.T) {
	cat := catalog.New(&catalog.Config{})

	assert.True(t, dnderr.IsCatalogUnavailable(cat.Load(context.Background())))
	assert.Empty(t, cat.Items(party.CategoryRemnant))
}

func TestFileSource_Missing(t *testing.T) {
	source := &catalog.FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}

	_, err := source.Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	t.Run("fetches json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(jsonCatalog))
		}))
		defer server.Close()

		source := catalog.NewHTTPSource(&catalog.HTTPSourceConfig{URL: server.URL + "/data.json", HttpClient: server.Client()})
		doc, err := source.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, doc.Characters, 3)
	})

	t.Run("fetches yaml by content type", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte(yamlCatalog))
		}))
		defer server.Close()

		source := catalog.NewHTTPSource(&catalog.HTTPSourceConfig{URL: server.URL + "/catalog"})
		doc, err := source.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, doc.Remnants, 1)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		source := catalog.NewHTTPSource(&catalog.HTTPSourceConfig{URL: server.URL + "/data.json"})
		_, err := source.Fetch(context.Background())
		assert.ErrorContains(t, err, "HTTP 404")
	})
}
