package docrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre un DocumentStore.
type UserRepo struct {
	store repository.DocumentStore
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(store repository.DocumentStore) *UserRepo {
	return &UserRepo{store: store}
}

// Create inserta el usuario y asigna user.ID.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	doc := userToDocument(user)
	if user.ID != "" {
		doc[repository.FieldID] = user.ID
	}
	id, err := r.store.Insert(ctx, repository.CollectionUsers, doc)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.store.Get(ctx, repository.CollectionUsers, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return documentToUser(doc), nil
}

// FindByUsernameLower busca por nombre de usuario en minúsculas.
func (r *UserRepo) FindByUsernameLower(ctx context.Context, usernameLower string) (*entity.User, error) {
	return r.findOne(ctx, fieldUsernameLower, usernameLower)
}

// FindByEmailLower busca por email en minúsculas.
func (r *UserRepo) FindByEmailLower(ctx context.Context, emailLower string) (*entity.User, error) {
	return r.findOne(ctx, fieldEmailLower, emailLower)
}

// FindByPhone busca por teléfono normalizado.
func (r *UserRepo) FindByPhone(ctx context.Context, phoneNormalized string) (*entity.User, error) {
	return r.findOne(ctx, fieldPhoneNormalized, phoneNormalized)
}

// FindByAuthUID busca por uid del proveedor de identidad.
func (r *UserRepo) FindByAuthUID(ctx context.Context, authUID string) (*entity.User, error) {
	return r.findOne(ctx, fieldAuthUID, authUID)
}

// Update reescribe el documento del usuario salvo createdAt.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	doc := userToDocument(user)
	delete(doc, repository.FieldCreatedAt)
	if err := r.store.Update(ctx, repository.CollectionUsers, user.ID, doc); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetAdmin actualiza solo isAdmin y updatedAt.
func (r *UserRepo) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	err := r.store.Update(ctx, repository.CollectionUsers, id, repository.Document{
		fieldIsAdmin:              isAdmin,
		repository.FieldUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	return nil
}

// List lista usuarios del más reciente al más antiguo.
func (r *UserRepo) List(ctx context.Context, limit int) ([]*entity.User, error) {
	docs, err := r.store.Find(ctx, repository.CollectionUsers, repository.Query{
		OrderBy:    repository.FieldCreatedAt,
		Descending: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	list := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		list = append(list, documentToUser(d))
	}
	return list, nil
}

func (r *UserRepo) findOne(ctx context.Context, field, value string) (*entity.User, error) {
	if value == "" {
		return nil, nil
	}
	docs, err := r.store.Find(ctx, repository.CollectionUsers, repository.Query{
		Filters: []repository.Filter{{Field: field, Op: repository.OpEq, Value: value}},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("find user by %s: %w", field, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return documentToUser(docs[0]), nil
}
