package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
	apperrors "github.com/dropDatabas3/boardz/internal/http/errors"
	"github.com/dropDatabas3/boardz/internal/http/services/admin"
	"github.com/dropDatabas3/boardz/internal/store/memory"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate() { c.calls++ }

func newFixture(t *testing.T) (*memory.Memory, admin.ComponentService, admin.PageService, *countingInvalidator) {
	t.Helper()
	mem := memory.New()
	inv := &countingInvalidator{}
	components := admin.NewComponentService(mem.Components(), inv)
	pages := admin.NewPageService(mem.Pages(), mem.Components(), []int{2, 3}, inv)
	return mem, components, pages, inv
}

func TestComponentCreate(t *testing.T) {
	ctx := context.Background()
	_, components, _, inv := newFixture(t)

	def, err := components.Create(ctx, admin.CreateComponentInput{
		Name:     " My Field! ",
		Label:    "My Field",
		Type:     "text",
		Required: true,
	})
	require.NoError(t, err)
	require.Equal(t, "my_field", def.Name, "name gets sanitized before storage")
	require.Equal(t, repository.TypeText, def.Type)
	require.NotEmpty(t, def.ID)
	require.Equal(t, 1, inv.calls, "creating a component drops the catalog cache")
}

func TestComponentCreateAggregatesFieldErrors(t *testing.T) {
	ctx := context.Background()
	_, components, _, _ := newFixture(t)

	_, err := components.Create(ctx, admin.CreateComponentInput{
		Name:  "x",
		Label: "   ",
		Type:  "hologram",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "VALIDATION_FAILED", appErr.Code)
	require.Contains(t, appErr.Fields, "name")
	require.Contains(t, appErr.Fields, "label")
	require.Contains(t, appErr.Fields, "type")
}

func TestComponentCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	_, components, _, _ := newFixture(t)

	_, err := components.Create(ctx, admin.CreateComponentInput{
		Name: "about_me", Label: "About Me", Type: "textarea",
	})
	require.NoError(t, err)

	_, err = components.Create(ctx, admin.CreateComponentInput{
		Name: "about_me", Label: "Other", Type: "text",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "COMPONENT_NAME_TAKEN", appErr.Code)
	require.Equal(t, "Component name already exists", appErr.Message)
}

func TestComponentUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	_, components, _, _ := newFixture(t)

	def, err := components.Create(ctx, admin.CreateComponentInput{
		Name: "website", Label: "Website", Type: "url",
	})
	require.NoError(t, err)

	label := "Personal Website"
	req := true
	updated, err := components.Update(ctx, def.ID, admin.UpdateComponentInput{
		Label:    &label,
		Required: &req,
	})
	require.NoError(t, err)
	require.Equal(t, "Personal Website", updated.Label)
	require.True(t, updated.Required)
	require.Equal(t, "website", updated.Name, "name is immutable")

	require.NoError(t, components.Delete(ctx, def.ID))

	err = components.Delete(ctx, def.ID)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "COMPONENT_NOT_FOUND", appErr.Code)
}

func TestPageUpsertRejectsEmptyList(t *testing.T) {
	ctx := context.Background()
	_, _, pages, _ := newFixture(t)

	_, err := pages.Upsert(ctx, 2, nil)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "Page 2 must have at least one component", appErr.Message)
}

func TestPageUpsertListsAllUnknownComponents(t *testing.T) {
	ctx := context.Background()
	_, components, pages, _ := newFixture(t)

	_, err := components.Create(ctx, admin.CreateComponentInput{
		Name: "about_me", Label: "About Me", Type: "textarea",
	})
	require.NoError(t, err)

	_, err = pages.Upsert(ctx, 2, []string{"about_me", "ghost", "phantom"})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "Invalid components: ghost, phantom", appErr.Message)
}

func TestPageUpsertUnknownPage(t *testing.T) {
	ctx := context.Background()
	_, _, pages, _ := newFixture(t)

	_, err := pages.Upsert(ctx, 7, []string{"about_me"})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	require.Equal(t, "INVALID_PARAMETER", appErr.Code)
}

func TestPageUpsertHappyPath(t *testing.T) {
	ctx := context.Background()
	_, components, pages, inv := newFixture(t)

	for _, c := range []admin.CreateComponentInput{
		{Name: "about_me", Label: "About Me", Type: "textarea"},
		{Name: "birthdate", Label: "Birthdate", Type: "date"},
	} {
		_, err := components.Create(ctx, c)
		require.NoError(t, err)
	}
	before := inv.calls

	cfg, err := pages.Upsert(ctx, 2, []string{"birthdate", "about_me"})
	require.NoError(t, err)
	require.Equal(t, []string{"birthdate", "about_me"}, cfg.Components, "order is preserved")
	require.False(t, cfg.UpdatedAt.IsZero())
	require.Equal(t, before+1, inv.calls)
}

func TestInitializeDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry fails", func(t *testing.T) {
		_, _, pages, _ := newFixture(t)
		_, err := pages.InitializeDefaults(ctx)
		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		require.Equal(t, "No components available for default setup", appErr.Message)
	})

	t.Run("prefers about_me and address", func(t *testing.T) {
		_, components, pages, _ := newFixture(t)
		for _, c := range []admin.CreateComponentInput{
			{Name: "birthdate", Label: "Birthdate", Type: "date"},
			{Name: "about_me", Label: "About Me", Type: "textarea"},
			{Name: "address", Label: "Address", Type: "address"},
		} {
			_, err := components.Create(ctx, c)
			require.NoError(t, err)
		}

		result, err := pages.InitializeDefaults(ctx)
		require.NoError(t, err)
		require.True(t, result.Initialized)
		require.Len(t, result.Pages, 2)
		require.Equal(t, []string{"about_me"}, result.Pages[0].Components)
		require.Equal(t, []string{"address"}, result.Pages[1].Components)
	})

	t.Run("single component lands on both pages", func(t *testing.T) {
		_, components, pages, _ := newFixture(t)
		_, err := components.Create(ctx, admin.CreateComponentInput{
			Name: "website", Label: "Website", Type: "url",
		})
		require.NoError(t, err)

		result, err := pages.InitializeDefaults(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"website"}, result.Pages[0].Components)
		require.Equal(t, []string{"website"}, result.Pages[1].Components)
	})

	t.Run("idempotent once configured", func(t *testing.T) {
		_, components, pages, _ := newFixture(t)
		_, err := components.Create(ctx, admin.CreateComponentInput{
			Name: "about_me", Label: "About Me", Type: "textarea",
		})
		require.NoError(t, err)

		first, err := pages.InitializeDefaults(ctx)
		require.NoError(t, err)
		require.True(t, first.Initialized)

		second, err := pages.InitializeDefaults(ctx)
		require.NoError(t, err)
		require.False(t, second.Initialized, "both pages configured, nothing to do")
	})
}
