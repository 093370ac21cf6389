package sqlrepo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type CategoryRepositoryTestSuite struct {
	suite.Suite
	columns    []string
	categoryID uuid.UUID
	userID     uuid.UUID
	urlID      uuid.UUID
	mock       sqlmock.Sqlmock
	repo       *CategoryRepository
}

func (suite *CategoryRepositoryTestSuite) SetupSuite() {
	suite.columns = []string{"id", "user_id", "name", "description", "icon", "color", "created_at", "updated_at"}
	suite.categoryID = uuid.New()
	suite.userID = uuid.New()
	suite.urlID = uuid.New()
}

func (suite *CategoryRepositoryTestSuite) SetupSubTest() {
	db, mock := newMockDB(suite.T())

	suite.mock = mock
	suite.repo = NewCategoryRepository(db, testDialect())
}

func (suite *CategoryRepositoryTestSuite) TearDownSubTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *CategoryRepositoryTestSuite) category() *entity.Category {
	return &entity.Category{
		ID:     suite.categoryID,
		UserID: suite.userID,
		Name:   "Work",
		Icon:   entity.DefaultCategoryIcon,
		Color:  entity.DefaultCategoryColor,
	}
}

func (suite *CategoryRepositoryTestSuite) TestCreateCategory() {
	suite.Run("name exists", func() {
		suite.mock.ExpectExec(`INSERT INTO categories`).
			WithArgs(sqlmock.AnyArg(), suite.userID, "Work", nil, "folder", "gray", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(errUniqueViolation)

		c, err := suite.repo.CreateCategory(context.Background(), suite.category())

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrCategoryExists)
		suite.Nil(c)
	})

	suite.Run("owner not found", func() {
		suite.mock.ExpectExec(`INSERT INTO categories`).
			WillReturnError(errForeignKeyViolation)

		c, err := suite.repo.CreateCategory(context.Background(), suite.category())

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrUserNotFound)
		suite.Nil(c)
	})

	suite.Run("success", func() {
		description := "work links"
		in := suite.category()
		in.Description = &description

		suite.mock.ExpectExec(`INSERT INTO categories`).
			WithArgs(sqlmock.AnyArg(), suite.userID, "Work", "work links", "folder", "gray", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		c, err := suite.repo.CreateCategory(context.Background(), in)

		suite.NoError(err)
		suite.NotNil(c)
		suite.NotEqual(uuid.Nil, c.ID)
		suite.Equal("Work", c.Name)
		suite.Equal(&description, c.Description)
	})
}

func (suite *CategoryRepositoryTestSuite) TestGetCategory() {
	suite.Run("category not found", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM categories WHERE id = \$1`).
			WithArgs(suite.categoryID).
			WillReturnError(sql.ErrNoRows)

		c, err := suite.repo.GetCategory(context.Background(), suite.categoryID)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrCategoryNotFound)
		suite.Nil(c)
	})

	suite.Run("success", func() {
		now := time.Now()
		rows := sqlmock.NewRows(suite.columns).
			AddRow(suite.categoryID.String(), suite.userID.String(), "Work", nil, "folder", "gray", now, now)

		suite.mock.ExpectQuery(`SELECT (.+) FROM categories`).
			WithArgs(suite.categoryID).
			WillReturnRows(rows)

		c, err := suite.repo.GetCategory(context.Background(), suite.categoryID)

		suite.NoError(err)
		suite.Equal(suite.categoryID, c.ID)
		suite.Equal(suite.userID, c.UserID)
		suite.Nil(c.Description)
	})
}

func (suite *CategoryRepositoryTestSuite) TestUpdateCategory() {
	suite.Run("category not found", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`UPDATE categories`).
			WithArgs("Work", nil, "folder", "gray", sqlmock.AnyArg(), suite.categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		suite.mock.ExpectRollback()

		c, err := suite.repo.UpdateCategory(context.Background(), suite.category())

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrCategoryNotFound)
		suite.Nil(c)
	})

	suite.Run("name exists", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`UPDATE categories`).
			WillReturnError(errUniqueViolation)
		suite.mock.ExpectRollback()

		c, err := suite.repo.UpdateCategory(context.Background(), suite.category())

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrCategoryExists)
		suite.Nil(c)
	})

	suite.Run("success", func() {
		now := time.Now()
		rows := sqlmock.NewRows(suite.columns).
			AddRow(suite.categoryID.String(), suite.userID.String(), "Work", "desc", "star", "red", now, now)

		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`UPDATE categories`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectQuery(`SELECT (.+) FROM categories`).
			WithArgs(suite.categoryID).
			WillReturnRows(rows)
		suite.mock.ExpectCommit()

		c, err := suite.repo.UpdateCategory(context.Background(), suite.category())

		suite.NoError(err)
		suite.Equal("star", c.Icon)
		suite.Equal("red", c.Color)
		suite.NotNil(c.Description)
		suite.Equal("desc", *c.Description)
	})
}

func (suite *CategoryRepositoryTestSuite) TestDeleteCategory() {
	suite.Run("category not found", func() {
		suite.mock.ExpectExec(`DELETE FROM categories`).
			WithArgs(suite.categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := suite.repo.DeleteCategory(context.Background(), suite.categoryID)

		suite.ErrorIs(err, entity.ErrCategoryNotFound)
	})

	suite.Run("success", func() {
		suite.mock.ExpectExec(`DELETE FROM categories`).
			WithArgs(suite.categoryID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := suite.repo.DeleteCategory(context.Background(), suite.categoryID)

		suite.NoError(err)
	})
}

func (suite *CategoryRepositoryTestSuite) TestListCategoriesWithURLCount() {
	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`LEFT JOIN url_categories`).
			WithArgs(suite.userID).
			WillReturnError(errUnknown)

		res, err := suite.repo.ListCategoriesWithURLCount(context.Background(), suite.userID)

		suite.ErrorIs(err, errUnknown)
		suite.Nil(res)
	})

	suite.Run("success", func() {
		now := time.Now()
		otherID := uuid.New()
		rows := sqlmock.NewRows(append(suite.columns, "url_count")).
			AddRow(otherID.String(), suite.userID.String(), "Home", nil, "folder", "gray", now, now, 0).
			AddRow(suite.categoryID.String(), suite.userID.String(), "Work", nil, "folder", "gray", now, now, 2)

		suite.mock.ExpectQuery(`COUNT\(DISTINCT uc.url_id\) AS url_count`).
			WithArgs(suite.userID).
			WillReturnRows(rows)

		res, err := suite.repo.ListCategoriesWithURLCount(context.Background(), suite.userID)

		suite.NoError(err)
		suite.Len(res, 2)
		suite.Equal("Home", res[0].Name)
		suite.Zero(res[0].URLCount)
		suite.Equal(suite.categoryID, res[1].ID)
		suite.Equal(int64(2), res[1].URLCount)
	})
}

func (suite *CategoryRepositoryTestSuite) TestOwnedCategoryIDs() {
	suite.Run("empty input", func() {
		ids, err := suite.repo.OwnedCategoryIDs(context.Background(), suite.userID, nil)

		suite.NoError(err)
		suite.Empty(ids)
	})

	suite.Run("success", func() {
		foreignID := uuid.New()
		rows := sqlmock.NewRows([]string{"id"}).AddRow(suite.categoryID.String())

		suite.mock.ExpectQuery(`SELECT id FROM categories WHERE user_id = \$1 AND id IN \(\$2, \$3\)`).
			WithArgs(suite.userID, suite.categoryID, foreignID).
			WillReturnRows(rows)

		ids, err := suite.repo.OwnedCategoryIDs(context.Background(), suite.userID, []uuid.UUID{suite.categoryID, foreignID})

		suite.NoError(err)
		suite.Equal([]uuid.UUID{suite.categoryID}, ids)
	})
}

func (suite *CategoryRepositoryTestSuite) TestAttachCategories() {
	otherID := uuid.New()

	suite.Run("empty input", func() {
		err := suite.repo.AttachCategories(context.Background(), suite.urlID, nil)

		suite.NoError(err)
	})

	suite.Run("url or category not found", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`INSERT INTO url_categories`).
			WithArgs(suite.urlID, suite.categoryID).
			WillReturnError(errForeignKeyViolation)
		suite.mock.ExpectRollback()

		err := suite.repo.AttachCategories(context.Background(), suite.urlID, []uuid.UUID{suite.categoryID})

		suite.ErrorIs(err, entity.ErrNotFound)
	})

	suite.Run("success", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`INSERT INTO url_categories \(url_id, category_id\) VALUES \(\$1, \$2\) ON CONFLICT DO NOTHING`).
			WithArgs(suite.urlID, suite.categoryID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectExec(`INSERT INTO url_categories`).
			WithArgs(suite.urlID, otherID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		suite.mock.ExpectCommit()

		err := suite.repo.AttachCategories(context.Background(), suite.urlID, []uuid.UUID{suite.categoryID, otherID})

		suite.NoError(err)
	})
}

func (suite *CategoryRepositoryTestSuite) TestDetachCategories() {
	suite.Run("empty input", func() {
		err := suite.repo.DetachCategories(context.Background(), suite.urlID, []uuid.UUID{})

		suite.NoError(err)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectExec(`DELETE FROM url_categories`).
			WillReturnError(errUnknown)

		err := suite.repo.DetachCategories(context.Background(), suite.urlID, []uuid.UUID{suite.categoryID})

		suite.ErrorIs(err, errUnknown)
	})

	suite.Run("success", func() {
		suite.mock.ExpectExec(`DELETE FROM url_categories WHERE url_id = \$1 AND category_id IN \(\$2\)`).
			WithArgs(suite.urlID, suite.categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := suite.repo.DetachCategories(context.Background(), suite.urlID, []uuid.UUID{suite.categoryID})

		suite.NoError(err)
	})
}

func (suite *CategoryRepositoryTestSuite) TestListURLsByCategory() {
	suite.Run("success", func() {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "short_code", "original_url", "user_id", "access_count", "created_at", "updated_at"}).
			AddRow(suite.urlID.String(), "abc123", "https://example.com", suite.userID.String(), 4, now, now)

		suite.mock.ExpectQuery(`JOIN url_categories uc ON uc.url_id = u.id`).
			WithArgs(suite.categoryID).
			WillReturnRows(rows)

		urls, err := suite.repo.ListURLsByCategory(context.Background(), suite.categoryID)

		suite.NoError(err)
		suite.Len(urls, 1)
		suite.Equal("abc123", urls[0].ShortCode)
		suite.Equal(int64(4), urls[0].AccessCount)
	})
}

func TestCategoryRepository(t *testing.T) {
	suite.Run(t, new(CategoryRepositoryTestSuite))
}
