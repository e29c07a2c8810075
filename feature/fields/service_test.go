package fields

import (
	"context"
	"testing"
	"time"

	"medialink/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, sqlMock
}

func fieldRows(value string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "field_key", "post_id", "value", "created_at", "updated_at"}).
		AddRow(1, "media", 7, value, time.Now(), time.Now())
}

func listingChan(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		name    string
		baseKey string
		want    string
	}{
		{"Empty", "", ""},
		{"Root", "/", ""},
		{"Plain", "a/b", "a/b/"},
		{"Slashed", "/a/b/", "a/b/"},
		{"Single", "photos", "photos/"},
		{"TrailingOnly", "photos/", "photos/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePrefix(tt.baseKey))
		})
	}
}

func TestService_GetLinkedItems(t *testing.T) {
	t.Run("StoredList", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), db)

		sqlMock.ExpectQuery("SELECT(.*)").WillReturnRows(fieldRows(`["photos/a.jpg","photos/b.jpg"]`))

		items, err := svc.GetLinkedItems(context.Background(), "media", 7)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "test-bucket", items[0].Bucket)
		assert.Equal(t, "photos/a.jpg", items[0].Key)
		assert.Equal(t, "photos/b.jpg", items[1].Key)
	})

	t.Run("AbsentRowIsEmpty", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), db)

		sqlMock.ExpectQuery("SELECT(.*)").WillReturnRows(sqlmock.NewRows([]string{"id"}))

		items, err := svc.GetLinkedItems(context.Background(), "media", 7)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("MalformedValueIsEmpty", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), db)

		sqlMock.ExpectQuery("SELECT(.*)").WillReturnRows(fieldRows(`{"not":"a list"}`))

		items, err := svc.GetLinkedItems(context.Background(), "media", 7)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("NullValueIsEmpty", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), db)

		sqlMock.ExpectQuery("SELECT(.*)").WillReturnRows(fieldRows(`null`))

		items, err := svc.GetLinkedItems(context.Background(), "media", 7)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestService_VerifyLinkedItems(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)

	sqlMock.ExpectQuery("SELECT(.*)").WillReturnRows(fieldRows(`["photos/a.jpg","photos/gone.jpg"]`))

	mockClient.On("StatObject", mock.Anything, "test-bucket", "photos/a.jpg", mock.Anything).
		Return(minio.ObjectInfo{Key: "photos/a.jpg", Size: 123}, nil)
	mockClient.On("StatObject", mock.Anything, "test-bucket", "photos/gone.jpg", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

	items, err := svc.VerifyLinkedItems(context.Background(), "media", 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Exists)
	assert.Equal(t, int64(123), items[0].Size)
	assert.False(t, items[1].Exists)
}

func TestService_UpdateField(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT(.*)").
		WithArgs("media", int64(7), `["photos/a.jpg"]`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	err := svc.UpdateField(context.Background(), "media", 7, []string{"photos/a.jpg"})
	require.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_ListKeys(t *testing.T) {
	db, _ := setupMockDB(t)
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)

	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{
		Prefix:    "photos/",
		Recursive: true,
	}).Return(listingChan("photos/", "photos/a.jpg"))

	keys, err := svc.ListKeys(context.Background(), "/photos/")
	require.NoError(t, err)
	assert.Equal(t, []string{"photos/a.jpg"}, keys)
}

func TestService_Relink(t *testing.T) {
	t.Run("GhostFiltered", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)

		mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{
			Prefix:    "photos/",
			Recursive: true,
		}).Return(listingChan("photos/", "photos/a.jpg", "photos/b.jpg"))

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec("INSERT(.*)").
			WithArgs("media", int64(7), `["photos/a.jpg","photos/b.jpg"]`, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		sqlMock.ExpectCommit()

		keys, err := svc.Relink(context.Background(), "media", 7, "photos")
		require.NoError(t, err)
		assert.Equal(t, []string{"photos/a.jpg", "photos/b.jpg"}, keys)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("TwiceInSuccessionIsIdempotent", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)

		opts := minio.ListObjectsOptions{Prefix: "photos/", Recursive: true}
		mockClient.On("ListObjects", mock.Anything, "test-bucket", opts).
			Return(listingChan("photos/", "photos/a.jpg", "photos/b.jpg")).Once()
		mockClient.On("ListObjects", mock.Anything, "test-bucket", opts).
			Return(listingChan("photos/", "photos/a.jpg", "photos/b.jpg")).Once()

		// Both runs must write exactly the filtered listing
		for i := 0; i < 2; i++ {
			sqlMock.ExpectBegin()
			sqlMock.ExpectExec("INSERT(.*)").
				WithArgs("media", int64(7), `["photos/a.jpg","photos/b.jpg"]`, sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(1, 1))
			sqlMock.ExpectCommit()
		}

		first, err := svc.Relink(context.Background(), "media", 7, "photos")
		require.NoError(t, err)
		second, err := svc.Relink(context.Background(), "media", 7, "photos")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		mockClient.AssertNumberOfCalls(t, "ListObjects", 2)
	})

	t.Run("RootPrefixListsUnprefixed", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)

		mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{
			Prefix:    "",
			Recursive: true,
		}).Return(listingChan("a.jpg"))

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec("INSERT(.*)").WillReturnResult(sqlmock.NewResult(1, 1))
		sqlMock.ExpectCommit()

		keys, err := svc.Relink(context.Background(), "media", 7, "/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.jpg"}, keys)
	})

	t.Run("EmptyListingWritesEmptyList", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)

		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
			Return(listingChan())

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec("INSERT(.*)").
			WithArgs("media", int64(7), `[]`, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		sqlMock.ExpectCommit()

		keys, err := svc.Relink(context.Background(), "media", 7, "empty")
		require.NoError(t, err)
		assert.Empty(t, keys)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("ListingFailureLeavesFieldUntouched", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		mockClient := new(mocks.Client)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), db)

		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: assert.AnError}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
			Return((<-chan minio.ObjectInfo)(ch))

		keys, err := svc.Relink(context.Background(), "media", 7, "photos")
		assert.Error(t, err)
		assert.Nil(t, keys)
		// No field write must have happened
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
