package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore defines the database operations required by UserProcessor
type UserStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (store.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, params store.UpdateProfileParams) (store.User, error)
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrUnsupportedFileType = errors.New("unsupported resume file type")
	ErrFileTooLarge        = errors.New("resume file too large")
	ErrEmptyFile           = errors.New("resume file is empty")
)

// MaxResumeSize is the largest accepted resume upload in bytes.
const MaxResumeSize = 5 << 20

const resumeSubdir = "resumes"

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type UserProcessor struct {
	store     UserStore
	uploadDir string
	logger    *observability.Logger
}

func New(store UserStore, uploadDir string, logger *observability.Logger) UserProcessor {
	return UserProcessor{store: store, uploadDir: uploadDir, logger: logger}
}

func (p *UserProcessor) GetProfile(ctx context.Context, userID string) (store.User, error) {
	id, err := store.ParseID(userID)
	if err != nil {
		return store.User{}, ErrInvalidUserID
	}
	user, err := p.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(ctx, "failed to get user profile", err)
		return store.User{}, err
	}
	return user, nil
}

func (p *UserProcessor) UpdateProfile(ctx context.Context, userID string, params store.UpdateProfileParams) (store.User, error) {
	id, err := store.ParseID(userID)
	if err != nil {
		return store.User{}, ErrInvalidUserID
	}
	if params.Name != nil {
		trimmed := strings.TrimSpace(*params.Name)
		params.Name = &trimmed
	}

	user, err := p.store.UpdateUserProfile(ctx, id, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(ctx, "failed to update user profile", err)
		return store.User{}, err
	}
	return user, nil
}

// SaveResume stores an uploaded resume under the upload directory and records
// its public path on the user's profile.
func (p *UserProcessor) SaveResume(ctx context.Context, userID string, filename string, size int64, r io.Reader) (store.User, error) {
	id, err := store.ParseID(userID)
	if err != nil {
		return store.User{}, ErrInvalidUserID
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedResumeExtensions[ext] {
		return store.User{}, ErrUnsupportedFileType
	}
	if size > MaxResumeSize {
		return store.User{}, ErrFileTooLarge
	}
	if size == 0 {
		return store.User{}, ErrEmptyFile
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID},
		observability.Field{Key: "file_size", Value: size},
	)

	dir := filepath.Join(p.uploadDir, resumeSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		p.logger.Error(ctx, "failed to create resume directory", err)
		return store.User{}, fmt.Errorf("failed to create resume directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", id.Hex(), uuid.NewString(), ext)
	diskPath := filepath.Join(dir, name)
	if err := writeFile(diskPath, r); err != nil {
		p.logger.Error(ctx, "failed to write resume", err)
		return store.User{}, err
	}

	publicPath := path.Join("/uploads", resumeSubdir, name)
	user, err := p.store.UpdateUserProfile(ctx, id, store.UpdateProfileParams{ResumePath: &publicPath})
	if err != nil {
		_ = os.Remove(diskPath)
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(ctx, "failed to record resume path", err)
		return store.User{}, err
	}

	p.logger.Info(ctx, "resume uploaded", observability.Field{Key: "resume_path", Value: publicPath})
	return user, nil
}

func writeFile(dst string, r io.Reader) error {
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create resume file: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, MaxResumeSize+1))
	if err != nil || n > MaxResumeSize {
		f.Close()
		_ = os.Remove(dst)
		if err == nil {
			return ErrFileTooLarge
		}
		return fmt.Errorf("failed to write resume file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to close resume file: %w", err)
	}
	return nil
}
