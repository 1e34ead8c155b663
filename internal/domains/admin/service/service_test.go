package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"studio/config"
	"studio/infras/jwt"
	jwtMocks "studio/infras/jwt/mocks"
	"studio/infras/otel/mocks"
	adminMocks "studio/internal/domains/admin/mocks"
	"studio/internal/domains/admin/model"
	"studio/internal/domains/admin/model/dto"
	"studio/internal/domains/admin/service"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/password"
	gRepo "studio/shared/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const adminID = "5f2b8a9e-6c1d-4e7f-8a3b-2d9c0e1f4a5b"

func newService(t *testing.T) (service.Admin, *adminMocks.MockAdmin, *jwtMocks.MockJWT, *config.Config) {
	t.Helper()

	password.Cost = bcrypt.MinCost

	ctrl := gomock.NewController(t)

	repo := adminMocks.NewMockAdmin(ctrl)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.AdminRegistrationEnable = true

	return service.New(repo, cfg, mocks.NewOtel(), jwtService), repo, jwtService, cfg
}

func TestAdminService_Register(t *testing.T) {
	tests := []struct {
		name          string
		disabled      bool
		setupMock     func(repo *adminMocks.MockAdmin)
		wantCode      int
		wantErrString string
	}{
		{
			name: "stores a bcrypt hash",
			setupMock: func(repo *adminMocks.MockAdmin) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "owner@example.com", args[model.FieldEmail])

						return false, nil
					})
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, admin model.Admin) error {
						assert.Equal(t, "owner@example.com", admin.Email)
						assert.NotEqual(t, "s3cret-pass", admin.Password)
						assert.NoError(t, password.Verify("s3cret-pass", admin.Password))

						return nil
					})
			},
		},
		{
			name: "email already registered",
			setupMock: func(repo *adminMocks.MockAdmin) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode:      400,
			wantErrString: dto.MessageAlreadyExists,
		},
		{
			name: "concurrent registration caught by the unique index",
			setupMock: func(repo *adminMocks.MockAdmin) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (Admin): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantCode:      400,
			wantErrString: dto.MessageAlreadyExists,
		},
		{
			name:          "registration switched off",
			disabled:      true,
			wantCode:      403,
			wantErrString: failure.ErrRegistrationClosed.Message,
		},
		{
			name: "storage error",
			setupMock: func(repo *adminMocks.MockAdmin) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, cfg := newService(t)
			cfg.App.AdminRegistrationEnable = !tt.disabled

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := svc.Register(context.Background(), dto.RegisterRequest{Email: " Owner@Example.com ", Password: "s3cret-pass"})

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErrString != "" {
				assert.Equal(t, tt.wantErrString, err.Error())
			}
		})
	}
}

func TestAdminService_Login(t *testing.T) {
	password.Cost = bcrypt.MinCost

	hashed, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	stored := model.Admin{ID: adminID, Email: "owner@example.com", Password: hashed}

	tests := []struct {
		name      string
		password  string
		setupMock func(repo *adminMocks.MockAdmin, jwtService *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name:     "valid credentials",
			password: "s3cret-pass",
			setupMock: func(repo *adminMocks.MockAdmin, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				jwtService.EXPECT().
					GenerateToken(gomock.Any(), adminID, "owner@example.com").
					Return(&jwt.Token{AccessToken: "signed", TokenType: "Bearer", ExpiresIn: 86400}, nil)
			},
		},
		{
			name:     "unknown email",
			password: "s3cret-pass",
			setupMock: func(repo *adminMocks.MockAdmin, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admin{}, gRepo.ErrNotFound)
			},
			wantCode: 401,
		},
		{
			name:     "wrong password",
			password: "guess",
			setupMock: func(repo *adminMocks.MockAdmin, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantCode: 401,
		},
		{
			name:     "signing error",
			password: "s3cret-pass",
			setupMock: func(repo *adminMocks.MockAdmin, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				jwtService.EXPECT().GenerateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrMissingSecret)
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, jwtService, _ := newService(t)
			tt.setupMock(repo, jwtService)

			res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "OWNER@example.com", Password: tt.password})

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "signed", res.Token)
				assert.Equal(t, "Bearer", res.TokenType)
				assert.Equal(t, int64(86400), res.ExpiresIn)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantCode == 401 {
				assert.Equal(t, "Invalid credentials", err.Error())
			}
		})
	}
}

func TestAdminService_Me(t *testing.T) {
	t.Run("identity from the token", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, columns ...string) (model.Admin, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, adminID, args[model.FieldID])
				assert.NotContains(t, columns, model.FieldPassword)

				return model.Admin{ID: adminID, Email: "owner@example.com"}, nil
			})

		ctx := jwt.WithClaims(context.Background(), &jwt.Claims{AdminID: adminID, Email: "owner@example.com"})

		res, err := svc.Me(ctx)

		require.NoError(t, err)
		assert.Equal(t, adminID, res.ID)
		assert.Equal(t, "owner@example.com", res.Email)
	})

	t.Run("no identity", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Me(context.Background())
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("admin removed after the token was issued", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Admin{}, gRepo.ErrNotFound)

		ctx := jwt.WithClaims(context.Background(), &jwt.Claims{AdminID: adminID, Email: "owner@example.com"})

		_, err := svc.Me(ctx)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}
