package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipes-service/internal/model"
	"github.com/pageza/recipes-service/internal/query"
	"github.com/pageza/recipes-service/internal/testhelpers"
)

func newMockRepo(t *testing.T) (*RecipeRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewRecipeRepository(db), mock
}

var recipeColumns = []string{"id", "name", "vegetarian", "servings", "ingredients", "instructions"}

func TestPostgresSearchSQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	expr := query.Build(query.Filters{
		Vegetarian:         boolPtr(true),
		IncludeIngredients: []string{"Pasta", "rice"},
		ExcludeIngredients: []string{"meat"},
	})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "recipe" WHERE "vegetarian" = $1 AND ` +
			`(LOWER("ingredients") LIKE $2 ESCAPE '\' OR LOWER("ingredients") LIKE $3 ESCAPE '\') AND ` +
			`LOWER("ingredients") NOT LIKE $4 ESCAPE '\'`)).
		WithArgs(true, "%pasta%", "%rice%", "%meat%").
		WillReturnRows(sqlmock.NewRows(recipeColumns).
			AddRow(1, "Pasta", true, 4, "pasta, tomato", "Cook"))

	got, err := repo.Query(context.Background(), expr)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pasta", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSearchWithoutFiltersHasNoWhere(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`^SELECT \* FROM "recipe"$`).
		WillReturnRows(sqlmock.NewRows(recipeColumns))

	got, err := repo.Query(context.Background(), query.Build(query.Filters{}))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsertReturnsID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "recipe"`).
		WithArgs("Pancakes", true, 4, "flour, milk", "Mix").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	r := model.Recipe{Name: "Pancakes", Vegetarian: true, Servings: 4, Ingredients: "flour, milk", Instructions: "Mix"}
	require.NoError(t, repo.Insert(context.Background(), &r))
	assert.Equal(t, int64(42), r.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplaceMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "recipe" SET .* WHERE id = \$6`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Replace(context.Background(), 7, &model.Recipe{Name: "x", Servings: 1, Ingredients: "y", Instructions: "z"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteMissingSucceeds(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM "recipe" WHERE "recipe"."id" = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFailureIsNotNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "recipe"`).WillReturnError(assert.AnError)

	_, err := repo.Fetch(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPostgresContainerRoundTrip(t *testing.T) {
	repo := NewRecipeRepository(testhelpers.SetupPostgres(t))
	ctx := context.Background()
	stored := seed(t, repo)

	got, err := repo.Query(ctx, query.Build(query.Filters{
		InstructionsContains: strPtr("COOK"),
		ExcludeIngredients:   []string{"lettuce"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pasta"}, names(got))

	require.NoError(t, repo.Delete(ctx, stored[0].ID))
	_, err = repo.Fetch(ctx, stored[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
