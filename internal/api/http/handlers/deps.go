package handlers

import (
	"context"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/api/dto"
	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/repository"
	"github.com/spec-kit/photoshare-service/internal/service"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// AuthAPI is the part of service.AuthService used by AuthHandler.
type AuthAPI interface {
	Signup(ctx context.Context, in service.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	Logout(ctx context.Context, user *domain.User) error
}

// UserAPI is the part of service.UserService used by UsersHandler.
type UserAPI interface {
	UpdateProfile(ctx context.Context, user *domain.User, in service.ProfileUpdate) (*domain.User, error)
	List(ctx context.Context, page repository.Page) ([]domain.User, error)
	Profile(ctx context.Context, username string) (*domain.UserProfile, error)
	Ban(ctx context.Context, actor *domain.User, email string) error
	ChangeRole(ctx context.Context, actor *domain.User, email string, role domain.Role) (*domain.User, error)
}

// PhotoAPI is the part of service.PhotoService used by PhotosHandler and TransformerHandler.
type PhotoAPI interface {
	Create(ctx context.Context, owner *domain.User, in service.PhotoCreateInput) (*domain.Photo, error)
	Get(ctx context.Context, id string) (*domain.Photo, error)
	List(ctx context.Context, filter repository.PhotoFilter) ([]domain.Photo, error)
	Update(ctx context.Context, actor *domain.User, id string, in service.PhotoUpdateInput) (*domain.Photo, error)
	Delete(ctx context.Context, actor *domain.User, id string) (*domain.Photo, error)
	Transform(ctx context.Context, actor *domain.User, id string, t domain.Transformation) (*domain.Photo, error)
	QRCode(ctx context.Context, id string) (*imagehost.Upload, error)
}

// TagAPI is the part of service.TagService used by TagsHandler.
type TagAPI interface {
	Create(ctx context.Context, user *domain.User, title string) (*domain.Tag, error)
	Rename(ctx context.Context, id, title string) (*domain.Tag, error)
}

// CommentAPI is the part of service.CommentService used by CommentsHandler.
type CommentAPI interface {
	ListForPhoto(ctx context.Context, photoID string, page repository.Page) ([]domain.Comment, error)
	Create(ctx context.Context, author *domain.User, photoID, text string) (*domain.Comment, error)
	Update(ctx context.Context, id, text string) (*domain.Comment, error)
	Delete(ctx context.Context, actor *domain.User, id string) (*domain.Comment, error)
}

func parseBody(c *fiber.Ctx, req dto.Validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Check(req)
}

func parsePage(c *fiber.Ctx) repository.Page {
	return repository.Page{
		Offset: parseInt(c.Query("skip"), 0),
		Limit:  parseInt(c.Query("limit"), 0),
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

// readUpload returns the bytes of the multipart file field. ok is false when the
// field is absent.
func readUpload(c *fiber.Ctx, field string, maxBytes int64) (data []byte, ok bool, err error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, false, nil
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, true, apperrors.NewDomainError("PAYLOAD_TOO_LARGE", "file too large", fiber.StatusRequestEntityTooLarge,
			map[string]any{"max_bytes": maxBytes})
	}
	file, err := header.Open()
	if err != nil {
		return nil, true, apperrors.NewValidationError("unreadable file", nil)
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, true, apperrors.NewValidationError("unreadable file", nil)
	}
	if len(data) == 0 {
		return nil, true, apperrors.NewValidationError("empty file", nil)
	}
	return data, true, nil
}
