package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"studio/config"
	"studio/infras/otel/mocks"
	galleryMocks "studio/internal/domains/gallery/mocks"
	"studio/internal/domains/gallery/model"
	"studio/internal/domains/gallery/model/dto"
	"studio/internal/domains/gallery/service"
	mediaMocks "studio/internal/domains/media/mocks"
	mediaModel "studio/internal/domains/media/model"
	mediaService "studio/internal/domains/media/service"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	imageID = "0f8e7a54-4a43-4b7b-9d0a-3c1f5e6a7b80"
	baseURL = "https://studio.example.com"
)

var storedAsset = mediaModel.Asset{
	Filename:     "compressed-1-abcd1234.jpg",
	RelativePath: "gallery/compressed-1-abcd1234.jpg",
	URL:          "http://localhost:5000/uploads/gallery/compressed-1-abcd1234.jpg",
}

func newService(t *testing.T) (service.Gallery, *galleryMocks.MockGallery, *mediaMocks.MockMedia) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := galleryMocks.NewMockGallery(ctrl)
	media := mediaMocks.NewMockMedia(ctrl)

	media.EXPECT().BaseURL(gomock.Any()).Return(baseURL).AnyTimes()

	cfg := &config.Config{}
	cfg.Media.Gallery = config.Transform{Width: 1200, Quality: 70}

	return service.New(repo, media, cfg, mocks.NewOtel()), repo, media
}

func TestGalleryService_Create(t *testing.T) {
	t.Run("ingests, stores and resolves the url", func(t *testing.T) {
		svc, repo, media := newService(t)

		media.EXPECT().
			IngestImage(gomock.Any(), gomock.Any(), mediaService.CategoryGallery, config.Transform{Width: 1200, Quality: 70}).
			Return(storedAsset, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, image model.Image) error {
				assert.Equal(t, model.DefaultCategory, image.Category)
				assert.Equal(t, storedAsset, image.Asset)

				return nil
			})

		res, err := svc.Create(context.Background(), dto.CreateImageRequest{Caption: "Sunset", Category: "  "}, strings.NewReader("img"))

		require.NoError(t, err)
		assert.Equal(t, baseURL+"/uploads/gallery/compressed-1-abcd1234.jpg", res.URL)
		assert.Equal(t, "gallery/compressed-1-abcd1234.jpg", res.Path)
		assert.Equal(t, "others", res.Category)
	})

	t.Run("processing failure writes nothing", func(t *testing.T) {
		svc, _, media := newService(t)

		media.EXPECT().
			IngestImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(mediaModel.Asset{}, failure.Processing(mediaService.MessageImageProcessing))

		_, err := svc.Create(context.Background(), dto.CreateImageRequest{}, strings.NewReader("not an image"))

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, mediaService.MessageImageProcessing, err.Error())
	})

	t.Run("insert failure removes the stored file", func(t *testing.T) {
		svc, repo, media := newService(t)

		media.EXPECT().IngestImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(storedAsset, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		media.EXPECT().Remove(gomock.Any(), storedAsset)

		_, err := svc.Create(context.Background(), dto.CreateImageRequest{Category: "wedding"}, strings.NewReader("img"))

		require.Error(t, err)
	})
}

func TestGalleryService_GetAll(t *testing.T) {
	t.Run("filters by category, newest first", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Image, error) {
				assert.Equal(t, []gDto.Sort{{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc}}, params.Sort)
				assert.Equal(t, gDto.Eq(model.FieldCategory, "wedding"), filter)

				return []model.Image{{ID: imageID, Asset: storedAsset, Category: "wedding"}}, nil
			})

		res, err := svc.GetAll(context.Background(), "wedding")

		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, baseURL+"/uploads/gallery/compressed-1-abcd1234.jpg", res[0].URL)
	})

	t.Run("no category lists everything", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gDto.FilterGroup{}).Return([]model.Image{}, nil)

		res, err := svc.GetAll(context.Background(), "")

		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestGalleryService_Update(t *testing.T) {
	replacement := mediaModel.Asset{Filename: "compressed-2-ffff0000.jpg", RelativePath: "gallery/compressed-2-ffff0000.jpg"}

	t.Run("new file replaces and removes the old one", func(t *testing.T) {
		svc, repo, media := newService(t)
		caption := "New caption"

		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{ID: imageID, Asset: storedAsset}, nil),
			media.EXPECT().IngestImage(gomock.Any(), gomock.Any(), mediaService.CategoryGallery, gomock.Any()).Return(replacement, nil),
			repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gDto.Eq(model.FieldID, imageID)).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
					assert.Equal(t, caption, fields[model.FieldCaption])
					assert.Equal(t, replacement.RelativePath, fields[mediaModel.FieldRelativePath])

					return 1, nil
				}),
			media.EXPECT().Remove(gomock.Any(), storedAsset),
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{ID: imageID, Asset: replacement, Caption: caption}, nil),
		)

		res, err := svc.Update(context.Background(), imageID, dto.UpdateImageRequest{Caption: &caption}, strings.NewReader("img"))

		require.NoError(t, err)
		assert.Equal(t, baseURL+"/uploads/gallery/compressed-2-ffff0000.jpg", res.URL)
	})

	t.Run("metadata only keeps the file", func(t *testing.T) {
		svc, repo, _ := newService(t)
		category := " "

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{ID: imageID, Asset: storedAsset}, nil).Times(2)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.DefaultCategory, fields[model.FieldCategory])
				assert.NotContains(t, fields, mediaModel.FieldRelativePath)

				return 1, nil
			})

		_, err := svc.Update(context.Background(), imageID, dto.UpdateImageRequest{Category: &category}, nil)

		require.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{}, gRepo.ErrNotFound)

		_, err := svc.Update(context.Background(), imageID, dto.UpdateImageRequest{}, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGalleryService_Delete(t *testing.T) {
	t.Run("removes record then file", func(t *testing.T) {
		svc, repo, media := newService(t)

		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{ID: imageID, Asset: storedAsset}, nil),
			repo.EXPECT().Delete(gomock.Any(), gDto.Eq(model.FieldID, imageID)).Return(int64(1), nil),
			media.EXPECT().Remove(gomock.Any(), storedAsset),
		)

		require.NoError(t, svc.Delete(context.Background(), imageID))
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Delete(context.Background(), "123")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "Image not found", err.Error())
	})

	t.Run("already gone", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{ID: imageID}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := svc.Delete(context.Background(), imageID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
