package fields

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"medialink/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client, sqlmock.Sqlmock) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	db, sqlMock := setupMockDB(t)
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient, sqlMock
}

func TestHandleGetLinkedItems(t *testing.T) {
	app, _, sqlMock := setupTestApp(t)

	sqlMock.ExpectQuery("SELECT(.*)").WillReturnRows(fieldRows(`["photos/a.jpg"]`))

	req := httptest.NewRequest("GET", "/fields/media/posts/7", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Items []struct {
			Bucket string `json:"bucket"`
			Key    string `json:"key"`
		} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "test-bucket", body.Items[0].Bucket)
	assert.Equal(t, "photos/a.jpg", body.Items[0].Key)
}

func TestHandleGetLinkedItems_BadPostID(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/fields/media/posts/abc", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleUpdateField(t *testing.T) {
	app, _, sqlMock := setupTestApp(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT(.*)").WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	// post_id as a string, the way some clients send it
	body := `{"key":"media","value":["photos/a.jpg"],"post_id":"7"}`
	req := httptest.NewRequest("PUT", "/fields/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestHandleUpdateField_MissingKey(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("PUT", "/fields/", strings.NewReader(`{"value":[],"post_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleRelink(t *testing.T) {
	app, mockClient, sqlMock := setupTestApp(t)

	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{
		Prefix:    "photos/",
		Recursive: true,
	}).Return(listingChan("photos/", "photos/a.jpg", "photos/b.jpg"))

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT(.*)").
		WithArgs("media", int64(7), `["photos/a.jpg","photos/b.jpg"]`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	body := `{"key":"media","post_id":7,"base_key":"/photos/"}`
	req := httptest.NewRequest("POST", "/fields/relink", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var keys []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&keys))
	assert.Equal(t, []string{"photos/a.jpg", "photos/b.jpg"}, keys)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestHandleRelink_StorageFailure(t *testing.T) {
	app, mockClient, sqlMock := setupTestApp(t)

	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: assert.AnError}
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	body := `{"key":"media","post_id":7,"base_key":"photos"}`
	req := httptest.NewRequest("POST", "/fields/relink", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestFieldsLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	db, _ := setupMockDB(t)
	feature := NewFeature(mockClient, "test-bucket", zap.NewNop(), db)

	assert.Equal(t, "fields", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
