package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesboard/internal/config"
	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/pipeline"
	"github.com/andresuchdata/salesboard/internal/storage"
)

const exportCSV = "Tip,Isim,TOPLAM,OCAK,ŞUBAT\nÜrün,Elma Suyu,\"1.500,00\",\"500\",\"300\"\n"

func TestSampleRows(t *testing.T) {
	rows := SampleRows()
	require.Len(t, rows, 2)

	ds, _ := pipeline.Run(rows)
	brands := ds.Collection(domain.EntityBrand)
	require.Len(t, brands, 2)
	assert.Equal(t, 107000.0, brands["Marka A"].TotalUnits)
	assert.Equal(t, 81800.0, brands["Marka B"].TotalUnits)
	assert.Equal(t, 97.5, brands["Marka B"].Percent)
	assert.Equal(t, 120000.0, brands["Marka A"].ForecastClose)
}

func TestLoader_UnreachableSourceFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := NewLoader(NewHTTPFetcher(url, time.Second)).Load(context.Background())

	assert.Equal(t, StatusFetchFailed, res.Status)
	assert.True(t, res.Fallback())
	assert.ErrorIs(t, res.Err, ErrSourceUnavailable)
	assert.NotEmpty(t, res.Reason())
	assert.Len(t, res.Rows, 2)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "http", res.Source)
}

func TestLoader_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	res := NewLoader(NewHTTPFetcher(srv.URL, time.Second)).Load(context.Background())
	assert.Equal(t, StatusFetchFailed, res.Status)
	assert.Contains(t, res.Reason(), "404")
	assert.Len(t, res.Rows, 2)
}

func TestLoader_EmptyPayload(t *testing.T) {
	for _, body := range []string{"", "Tip,Isim\n", ",\n,\n"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		res := NewLoader(NewHTTPFetcher(srv.URL, time.Second)).Load(context.Background())
		assert.Equal(t, StatusEmptyPayload, res.Status, "%q", body)
		assert.ErrorIs(t, res.Err, ErrEmptyPayload)
		assert.Len(t, res.Rows, 2)

		srv.Close()
	}
}

func TestLoader_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(exportCSV))
	}))
	defer srv.Close()

	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	res := NewLoader(NewHTTPFetcher(srv.URL, time.Second), WithClock(func() time.Time { return now })).Load(context.Background())

	require.Equal(t, StatusOK, res.Status)
	assert.False(t, res.Fallback())
	assert.NoError(t, res.Err)
	assert.Equal(t, "", res.Reason())
	assert.Equal(t, now, res.FetchedAt)
	assert.Len(t, res.PayloadHash, 40)
	require.Len(t, res.Rows, 1)

	again := NewLoader(NewHTTPFetcher(srv.URL, time.Second)).Load(context.Background())
	assert.Equal(t, res.PayloadHash, again.PayloadHash)
	assert.NotEqual(t, res.RunID, again.RunID)
}

func TestLoader_NilFetcher(t *testing.T) {
	res := NewLoader(nil).Load(context.Background())
	assert.Equal(t, StatusSample, res.Status)
	assert.NoError(t, res.Err)
	assert.Len(t, res.Rows, 2)
}

func TestLoader_ForcedDelimiter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("Tip|Isim|OCAK\nMarka|Kola|5\n"), 0o644))

	res := NewLoader(&FileFetcher{Path: path}, WithDelimiter('|')).Load(context.Background())
	require.Equal(t, StatusOK, res.Status)
	v, _ := res.Rows[0].Get("Isim")
	assert.Equal(t, "Kola", v)
}

func TestFileFetcher_Missing(t *testing.T) {
	res := NewLoader(&FileFetcher{Path: filepath.Join(t.TempDir(), "yok.csv")}).Load(context.Background())
	assert.Equal(t, StatusFetchFailed, res.Status)
	assert.True(t, errors.Is(res.Err, os.ErrNotExist))
}

type memStore map[string]storage.ObjectInfo

func (m memStore) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	out := make([]storage.ObjectInfo, 0, len(m))
	for _, o := range m {
		out = append(out, o)
	}
	return out, nil
}

func (m memStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	if _, ok := m[key]; !ok {
		return nil, storage.ErrObjectNotFound
	}
	return []byte(exportCSV), nil
}

func TestObjectFetcher(t *testing.T) {
	store := memStore{
		"exports/2024-05.csv": {Key: "exports/2024-05.csv", LastModified: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		"exports/2024-06.csv": {Key: "exports/2024-06.csv", LastModified: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	data, err := (&ObjectFetcher{Store: store, Prefix: "exports/"}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, exportCSV, string(data))

	res := NewLoader(&ObjectFetcher{Store: store, Key: "missing.csv"}).Load(context.Background())
	assert.Equal(t, StatusFetchFailed, res.Status)
	assert.ErrorIs(t, res.Err, storage.ErrObjectNotFound)
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]rune{"": 0, ";": ';', ",": ',', "tab": '\t', `\t`: '\t', "|": '|'}
	for in, want := range tests {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDelimiter(";;")
	assert.Error(t, err)
}

func TestNewFetcher(t *testing.T) {
	ctx := context.Background()

	f, err := NewFetcher(ctx, &config.Config{Source: config.SourceConfig{Kind: "sample"}})
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = NewFetcher(ctx, &config.Config{Source: config.SourceConfig{Kind: "http", URL: "http://x", TimeoutSeconds: 5}})
	require.NoError(t, err)
	assert.Equal(t, "http", f.Name())

	f, err = NewFetcher(ctx, &config.Config{Source: config.SourceConfig{Kind: "file", File: "a.csv"}})
	require.NoError(t, err)
	assert.Equal(t, "file", f.Name())

	_, err = NewFetcher(ctx, &config.Config{Source: config.SourceConfig{Kind: "http"}})
	assert.Error(t, err)

	_, err = NewFetcher(ctx, &config.Config{Source: config.SourceConfig{Kind: "drive"}})
	assert.Error(t, err)

	_, err = NewFetcher(ctx, &config.Config{Source: config.SourceConfig{Kind: "object"}})
	assert.Error(t, err)

	_, err = NewFetcher(ctx, &config.Config{Source: config.SourceConfig{Kind: "ftp"}})
	assert.Error(t, err)

	l, err := NewLoaderFromConfig(ctx, &config.Config{Source: config.SourceConfig{Kind: "sample", Delimiter: ";"}})
	require.NoError(t, err)
	assert.Equal(t, StatusSample, l.Load(ctx).Status)
}
