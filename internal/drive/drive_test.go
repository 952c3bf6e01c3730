package drive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesboard/internal/domain"
)

type fakeFiles struct {
	files    []*File
	payloads map[string][]byte
	listErr  error
}

func (f *fakeFiles) ListFiles(ctx context.Context, folderID string) ([]*File, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.files, nil
}

func (f *fakeFiles) GetFile(ctx context.Context, fileID string) (*File, error) {
	for _, file := range f.files {
		if file.ID == fileID {
			return file, nil
		}
	}
	return nil, errors.New("file not found")
}

func (f *fakeFiles) Fetch(ctx context.Context, file *File) ([]byte, error) {
	p, ok := f.payloads[file.ID]
	if !ok {
		return nil, errors.New("no content")
	}
	return p, nil
}

type fakeFolders map[string]string

func (f fakeFolders) FindFolderByPath(ctx context.Context, path string) (string, error) {
	if id, ok := f[path]; ok {
		return id, nil
	}
	return "", errors.New("folder not found: " + path)
}

const salesCSV = "Tip,Isim,OCAK,ŞUBAT\nÜrün,Elma Suyu,500,300\nMarka,Kola,10,\nKanal,Online,1,1\n,boş,1,1\n"

func newFakeFiles() *fakeFiles {
	return &fakeFiles{
		files: []*File{
			{ID: "img", Name: "logo.png", MimeType: "image/png"},
			{ID: "sheet", Name: "Satışlar", MimeType: mimeSpreadsheet},
			{ID: "old", Name: "eski.csv", MimeType: "text/csv"},
		},
		payloads: map[string][]byte{
			"sheet": []byte(salesCSV),
			"old":   []byte("Isim\nA\n"),
		},
	}
}

func TestFileIsSpreadsheet(t *testing.T) {
	assert.True(t, (&File{MimeType: mimeSpreadsheet}).IsSpreadsheet())
	assert.True(t, (&File{Name: "rapor.XLSX"}).IsSpreadsheet())
	assert.True(t, (&File{Name: "x", MimeType: "text/csv"}).IsSpreadsheet())
	assert.False(t, (&File{Name: "logo.png", MimeType: "image/png"}).IsSpreadsheet())
}

func TestLocator(t *testing.T) {
	files := newFakeFiles()
	ctx := context.Background()

	f, payload, err := NewLocator(files, "", "folder").Download(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sheet", f.ID, "newest spreadsheet wins")
	assert.Equal(t, salesCSV, string(payload))

	f, err = NewLocator(files, "old", "folder").Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old", f.ID, "pinned file id wins over folder")

	_, err = NewLocator(&fakeFiles{files: []*File{{ID: "img", Name: "a.png"}}}, "", "f").Locate(ctx)
	assert.ErrorIs(t, err, ErrNoSpreadsheet)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewLocator(files, "", "folder").Locate(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreviewService(t *testing.T) {
	res, err := NewPreviewService(newFakeFiles()).Preview(context.Background(), "sheet")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 3, res.Canonical)
	assert.Equal(t, 1, res.Counts[domain.EntityProduct])
	assert.Equal(t, 1, res.Counts[domain.EntityBrand])
	assert.Equal(t, 1, res.Counts[domain.EntityChannel])
	assert.Equal(t, 0, res.Counts[domain.EntityCustomer])

	_, err = NewPreviewService(newFakeFiles()).Preview(context.Background(), "img")
	assert.Error(t, err)
}

func newRouter(files *fakeFiles) *mux.Router {
	router := mux.NewRouter()
	NewHandler(files, fakeFolders{"Satis/2024": "folder-2024"}, NewPreviewService(files)).RegisterRoutes(router)
	return router
}

func TestHandler_ListFiles(t *testing.T) {
	router := newRouter(newFakeFiles())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/files?path=Satis/2024", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var files []*File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	assert.Len(t, files, 3)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/files?path=Yok", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	failing := newFakeFiles()
	failing.listErr = errors.New("quota exceeded")
	w = httptest.NewRecorder()
	newRouter(failing).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/files", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_DownloadFile(t *testing.T) {
	router := newRouter(newFakeFiles())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/files/download?fileId=old", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Isim\nA\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "eski.csv")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/files/download", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Preview(t *testing.T) {
	router := newRouter(newFakeFiles())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/drive/preview?fileId=sheet", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res PreviewResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Counts[domain.EntityProduct])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drive/preview?fileId=sheet", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/drive/preview?fileId=missing", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
