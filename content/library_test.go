package content_test

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancientlore/folio/content"
)

// memCatalog is an in-memory Catalog.
type memCatalog struct {
	units   map[content.Address]*content.Unit
	listErr error
	loadErr map[content.Address]error
	loads   atomic.Int32
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		units:   make(map[content.Address]*content.Unit),
		loadErr: make(map[content.Address]error),
	}
}

func (m *memCatalog) add(c content.Category, id string, md *content.Metadata, body string) {
	addr := content.Address{Category: c, ID: id}
	m.units[addr] = &content.Unit{
		Address:  addr,
		Metadata: md,
		Render:   func() (template.HTML, error) { return template.HTML(body), nil },
	}
}

func (m *memCatalog) List(ctx context.Context, c content.Category) ([]content.Address, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var r []content.Address
	for a := range m.units {
		if a.Category == c {
			r = append(r, a)
		}
	}
	for a := range m.loadErr {
		if a.Category == c {
			r = append(r, a)
		}
	}
	sort.Slice(r, func(i, j int) bool { return r[i].ID < r[j].ID })
	return r, nil
}

func (m *memCatalog) Load(ctx context.Context, a content.Address) (*content.Unit, error) {
	m.loads.Add(1)
	if err, ok := m.loadErr[a]; ok {
		return nil, err
	}
	u, ok := m.units[a]
	if !ok {
		return nil, content.ErrNotFound
	}
	return u, nil
}

func post(title, date string) *content.Metadata {
	return &content.Metadata{Title: title, PubDate: content.Date(date), Published: true, Tags: []string{"go"}}
}

func titles(l *content.Listing) []string {
	r := make([]string, len(l.Posts))
	for i, p := range l.Posts {
		r[i] = p.Title
	}
	return r
}

func TestIndexSortsByDateDescending(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "a", post("new year", "2024-01-01"), "a")
	cat.add(content.Blog, "b", post("summer", "2024-06-01"), "b")
	cat.add(content.Blog, "c", post("winter", "2023-12-01"), "c")
	cat.add(content.Projects, "p", post("project", "2025-01-01"), "p")

	lib := content.New(cat, nil)
	l, err := lib.Index(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, []string{"summer", "new year", "winter"}, titles(l))
	for i := 1; i < len(l.Posts); i++ {
		a, err := content.ParseDate(l.Posts[i-1].PubDate)
		require.NoError(t, err)
		b, err := content.ParseDate(l.Posts[i].PubDate)
		require.NoError(t, err)
		assert.False(t, a.Before(b), "%s before %s", a, b)
	}
}

func TestIndexSkipsUnitsWithoutMetadata(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "with", post("with", "2024-01-01"), "x")
	cat.add(content.Blog, "without", nil, "y")

	l, err := content.New(cat, nil).Index(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, []string{"with"}, titles(l))
}

func TestIndexEmptyCategory(t *testing.T) {
	l, err := content.New(newMemCatalog(), nil).Index(context.Background(), "projects")
	require.NoError(t, err)
	require.NotNil(t, l.Posts)
	assert.Empty(t, l.Posts)

	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[]}`, string(b))
}

func TestIndexStableTies(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "c", post("third", "2024-03-03"), "")
	cat.add(content.Blog, "a", post("first", "2024-03-03"), "")
	cat.add(content.Blog, "b", post("second", "2024-03-03T00:00:00Z"), "")
	cat.add(content.Blog, "d", post("newest", "2024-04-01"), "")

	lib := content.New(cat, &content.Options{Concurrency: 2})
	l, err := lib.Index(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "first", "second", "third"}, titles(l))
}

func TestIndexIdempotent(t *testing.T) {
	cat := newMemCatalog()
	for _, d := range []string{"2021-05-01", "2022-05-01", "2020-05-01", "2022-05-01", "2019-01-01"} {
		cat.add(content.Blog, "p"+d+string(rune('a'+len(cat.units))), post(d, d), "")
	}
	lib := content.New(cat, nil)
	first, err := lib.Index(context.Background(), "blog")
	require.NoError(t, err)
	second, err := lib.Index(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIndexBadDate(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "good", post("good", "2024-01-01"), "")
	cat.add(content.Blog, "bad", post("bad", "someday"), "")

	_, err := content.New(cat, nil).Index(context.Background(), "blog")
	require.Error(t, err)
	var me *content.MetadataError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "pubdate", me.Field)
	assert.Equal(t, "someday", me.Value)
	assert.Equal(t, content.Address{Category: content.Blog, ID: "bad"}, me.Address)
}

func TestIndexInvalidCategory(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "a", post("a", "2024-01-01"), "")
	_, err := content.New(cat, nil).Index(context.Background(), "recipes")
	assert.ErrorIs(t, err, content.ErrInvalidCategory)
	_, err = content.New(cat, nil).Index(context.Background(), "Blog")
	assert.ErrorIs(t, err, content.ErrInvalidCategory)
}

func TestIndexStorageErrors(t *testing.T) {
	cat := newMemCatalog()
	cat.listErr = &content.StorageError{Op: "list", Address: content.Address{Category: content.Blog}, Err: errors.New("disk on fire")}
	_, err := content.New(cat, nil).Index(context.Background(), "blog")
	var se *content.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list", se.Op)

	cat = newMemCatalog()
	cat.add(content.Blog, "a", post("a", "2024-01-01"), "")
	bad := content.Address{Category: content.Blog, ID: "b"}
	cat.loadErr[bad] = &content.StorageError{Op: "load", Address: bad, Err: errors.New("bad bytes")}
	_, err = content.New(cat, nil).Index(context.Background(), "blog")
	require.True(t, errors.As(err, &se))
	assert.Equal(t, bad, se.Address)
}

func TestIndexSkipsVanishedUnits(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "a", post("a", "2024-01-01"), "")
	cat.loadErr[content.Address{Category: content.Blog, ID: "gone"}] = content.ErrNotFound
	l, err := content.New(cat, nil).Index(context.Background(), "blog")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, titles(l))
}

func TestIndexLoadsEveryUnit(t *testing.T) {
	cat := newMemCatalog()
	for i := 0; i < 20; i++ {
		cat.add(content.Projects, string(rune('a'+i)), post("p", "2024-01-01"), "")
	}
	_, err := content.New(cat, &content.Options{Concurrency: 3}).Index(context.Background(), "projects")
	require.NoError(t, err)
	assert.EqualValues(t, 20, cat.loads.Load())
}

func TestIndexConcurrentCalls(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "a", post("a", "2024-01-01"), "")
	cat.add(content.Blog, "b", post("b", "2024-02-01"), "")
	lib := content.New(cat, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := lib.Index(context.Background(), "blog")
			if err != nil {
				t.Error(err)
				return
			}
			if len(l.Posts) != 2 || l.Posts[0].Title != "b" {
				t.Errorf("unexpected listing %v", titles(l))
			}
		}()
	}
	wg.Wait()
}

func TestSummaryHasExactlyTenFields(t *testing.T) {
	md := &content.Metadata{
		Title:           "t",
		PubDate:         "2024-01-01",
		Lede:            "l",
		Published:       true,
		PID:             "pid",
		ContentEncoding: "markdown",
		ResourceType:    "article",
		Tags:            []string{"a", "b"},
		Layout:          "wide",
	}
	b, err := json.Marshal(md.Summarize())
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"title", "pubdate", "lede", "published", "pid",
		"contentEncoding", "resourceType", "featuredImage", "tags", "imageAlt",
	}, keys)
}

func TestSummaryCopiesTags(t *testing.T) {
	md := post("t", "2024-01-01")
	s := md.Summarize()
	s.Tags[0] = "changed"
	assert.Equal(t, "go", md.Tags[0])
}

func TestSummaryTagsNeverNull(t *testing.T) {
	md := &content.Metadata{Title: "untagged", PubDate: "2024-01-01"}
	b, err := json.Marshal(md.Summarize())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tags":[]`)
}

func TestResolve(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "existing-id", post("Hello", "2024-01-01"), "<p>hi</p>")
	cat.add(content.Blog, "bare", nil, "<p>no front matter</p>")
	lib := content.New(cat, nil)

	e, err := lib.Resolve(context.Background(), "blog", "existing-id")
	require.NoError(t, err)
	require.NotNil(t, e.Metadata)
	assert.Equal(t, "Hello", e.Metadata.Title)
	assert.Equal(t, template.HTML("<p>hi</p>"), e.Content)

	e, err = lib.Resolve(context.Background(), "blog", "bare")
	require.NoError(t, err)
	assert.Nil(t, e.Metadata)
	assert.NotEmpty(t, e.Content)
}

func TestResolveNotFound(t *testing.T) {
	cat := newMemCatalog()
	cat.add(content.Blog, "x", post("x", "2024-01-01"), "x")
	lib := content.New(cat, nil)

	for _, id := range []string{"nonexistent-id", "", "..", "../blog/x", ".hidden", `a\b`} {
		_, err := lib.Resolve(context.Background(), "projects", id)
		assert.ErrorIs(t, err, content.ErrNotFound, "id %q", id)
	}
	_, err := lib.Resolve(context.Background(), "projects", "x")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestResolveInvalidCategory(t *testing.T) {
	_, err := content.New(newMemCatalog(), nil).Resolve(context.Background(), "", "x")
	assert.ErrorIs(t, err, content.ErrInvalidCategory)
}

func TestResolveRenderError(t *testing.T) {
	cat := newMemCatalog()
	addr := content.Address{Category: content.Blog, ID: "broken"}
	cat.units[addr] = &content.Unit{
		Address:  addr,
		Metadata: post("broken", "2024-01-01"),
		Render:   func() (template.HTML, error) { return "", errors.New("boom") },
	}
	_, err := content.New(cat, nil).Resolve(context.Background(), "blog", "broken")
	var se *content.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "render", se.Op)
	assert.NotErrorIs(t, err, content.ErrNotFound)
}
