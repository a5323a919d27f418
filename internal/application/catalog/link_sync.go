// Package catalog mantiene la relación muchos-a-muchos Category <-> Product.
//
// Cada lado guarda su lista de ids en su propio documento (categories.productIds y
// products.categoryIds). Tras editar un lado, LinkSynchronizer reemplaza la lista del
// registro primario y parchea id por id los registros del otro lado, de modo que
//
//	P.id ∈ C.productIds  <=>  C.id ∈ P.categoryIds
//
// se cumpla después de cada llamada. La sincronización corre después de que el llamador
// guardó el registro primario: un fallo parcial no revierte esa edición, se reporta.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/foodzo-api/internal/application/catalog")

// DefaultConcurrency máximo de actualizaciones de registros relacionados en vuelo por llamada.
const DefaultConcurrency = 8

// Operaciones sobre el lado relacionado.
const (
	OpAdd    = "add"
	OpRemove = "remove"
)

// Side describe qué colección es la primaria y qué campo guarda los ids en cada lado.
type Side struct {
	Name              string
	Collection        string
	Field             string
	RelatedCollection string
	RelatedField      string
}

var (
	// ProductSide: el primario es un Product y se propaga a Categories.
	ProductSide = Side{
		Name:              "product",
		Collection:        repository.CollectionProducts,
		Field:             repository.FieldCategoryIDs,
		RelatedCollection: repository.CollectionCategories,
		RelatedField:      repository.FieldProductIDs,
	}
	// CategorySide: el primario es una Category y se propaga a Products.
	CategorySide = Side{
		Name:              "category",
		Collection:        repository.CollectionCategories,
		Field:             repository.FieldProductIDs,
		RelatedCollection: repository.CollectionProducts,
		RelatedField:      repository.FieldCategoryIDs,
	}
)

// SyncRecorder recibe un evento por cada escritura o fallo (lo implementa el adaptador de métricas).
type SyncRecorder interface {
	PrimaryWrite(collection string)
	RelatedWrite(collection, op string)
	RelatedFailure(collection, op string)
}

type nopRecorder struct{}

func (nopRecorder) PrimaryWrite(string)           {}
func (nopRecorder) RelatedWrite(string, string)   {}
func (nopRecorder) RelatedFailure(string, string) {}

// LinkFailure fallo al actualizar un registro relacionado.
type LinkFailure struct {
	RelatedID string
	Op        string
	Err       error
}

// SyncReport resultado de una sincronización.
type SyncReport struct {
	Side           string
	Primary        string
	PrimaryWritten bool
	Added          []string // additions = next - previous
	Removed        []string // removals = previous - next
	RelatedWrites  int
	Skipped        []string // relacionados inexistentes
	Failures       []LinkFailure
}

// Err agrupa los fallos del reporte (nil si no hubo).
func (r *SyncReport) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s %s: %w", f.Op, f.RelatedID, f.Err))
	}
	return errors.Join(errs...)
}

// LinkSynchronizer sincroniza ambos lados de la relación sobre un DocumentStore.
type LinkSynchronizer struct {
	store       repository.DocumentStore
	log         *logger.Logger
	recorder    SyncRecorder
	concurrency int
	now         func() time.Time
}

// NewLinkSynchronizer construye el sincronizador. log y recorder pueden ser nil;
// concurrency <= 0 usa DefaultConcurrency.
func NewLinkSynchronizer(store repository.DocumentStore, log *logger.Logger, recorder SyncRecorder, concurrency int) *LinkSynchronizer {
	if log == nil {
		log = logger.Nop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &LinkSynchronizer{
		store:       store,
		log:         log,
		recorder:    recorder,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// SetClock reemplaza el reloj usado para updatedAt.
func (s *LinkSynchronizer) SetClock(now func() time.Time) {
	s.now = now
}

// SyncProductCategoryLinks se llama después de guardar un producto: fija products.categoryIds
// y agrega/quita el producto en cada categoría afectada.
func (s *LinkSynchronizer) SyncProductCategoryLinks(ctx context.Context, productID string, nextCategoryIDs, previousCategoryIDs []string) (*SyncReport, error) {
	return s.syncRelation(ctx, productID, nextCategoryIDs, previousCategoryIDs, ProductSide)
}

// SyncCategoryProductLinks se llama después de guardar una categoría: fija categories.productIds
// y agrega/quita la categoría en cada producto afectado.
func (s *LinkSynchronizer) SyncCategoryProductLinks(ctx context.Context, categoryID string, nextProductIDs, previousProductIDs []string) (*SyncReport, error) {
	return s.syncRelation(ctx, categoryID, nextProductIDs, previousProductIDs, CategorySide)
}

// linkOutcome resultado de una actualización sobre un registro relacionado.
type linkOutcome struct {
	relatedID string
	op        string
	written   bool
	missing   bool
	err       error
}

func (s *LinkSynchronizer) syncRelation(ctx context.Context, primaryID string, nextIDs, previousIDs []string, side Side) (*SyncReport, error) {
	primaryID = strings.TrimSpace(primaryID)
	if primaryID == "" {
		return nil, domain.NewValidationError("id del registro primario vacío")
	}
	next := NormalizeIDs(nextIDs)
	previous := NormalizeIDs(previousIDs)

	ctx, span := tracer.Start(ctx, "LinkSynchronizer.Sync", trace.WithAttributes(
		attribute.String("link.side", side.Name),
		attribute.String("link.primary", primaryID),
	))
	defer span.End()

	report := &SyncReport{Side: side.Name, Primary: primaryID}

	// El lado primario se reemplaza completo; es la única escritura cuyo fallo se propaga.
	written, err := s.replaceIDs(ctx, side.Collection, primaryID, side.Field, next)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "escritura del registro primario")
		return report, fmt.Errorf("sync %s %s: %w", side.Name, primaryID, err)
	}
	report.PrimaryWritten = written
	if written {
		s.recorder.PrimaryWrite(side.Collection)
	}

	report.Removed = difference(previous, next)
	report.Added = difference(next, previous)

	outcomes := make([]linkOutcome, len(report.Added)+len(report.Removed))
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, relatedID := range report.Added {
		g.Go(func() error {
			outcomes[i] = s.addLink(ctx, side, relatedID, primaryID)
			return nil
		})
	}
	offset := len(report.Added)
	for i, relatedID := range report.Removed {
		g.Go(func() error {
			outcomes[offset+i] = s.removeLink(ctx, side, relatedID, primaryID)
			return nil
		})
	}
	// Las goroutines nunca devuelven error: cada una deja su resultado en outcomes.
	_ = g.Wait()

	for _, o := range outcomes {
		switch {
		case o.err != nil:
			report.Failures = append(report.Failures, LinkFailure{RelatedID: o.relatedID, Op: o.op, Err: o.err})
			s.recorder.RelatedFailure(side.RelatedCollection, o.op)
			s.log.Warn().Err(o.err).
				Str("side", side.Name).
				Str("primary", primaryID).
				Str("related", o.relatedID).
				Str("op", o.op).
				Msg("sincronización de vínculo fallida")
		case o.missing:
			report.Skipped = append(report.Skipped, o.relatedID)
		case o.written:
			report.RelatedWrites++
			s.recorder.RelatedWrite(side.RelatedCollection, o.op)
		}
	}

	span.SetAttributes(
		attribute.Bool("link.primary_written", report.PrimaryWritten),
		attribute.Int("link.added", len(report.Added)),
		attribute.Int("link.removed", len(report.Removed)),
		attribute.Int("link.related_writes", report.RelatedWrites),
		attribute.Int("link.failures", len(report.Failures)),
	)
	if len(report.Failures) > 0 {
		span.SetStatus(codes.Error, "fallos parciales en registros relacionados")
	}

	s.log.Debug().
		Str("side", side.Name).
		Str("primary", primaryID).
		Bool("primary_written", report.PrimaryWritten).
		Int("added", len(report.Added)).
		Int("removed", len(report.Removed)).
		Int("related_writes", report.RelatedWrites).
		Int("failures", len(report.Failures)).
		Msg("vínculos sincronizados")
	return report, nil
}

// replaceIDs fija field = next solo si el conjunto guardado difiere. Un registro inexistente
// no es error: devuelve (false, nil).
func (s *LinkSynchronizer) replaceIDs(ctx context.Context, collection, id, field string, next []string) (bool, error) {
	doc, err := s.store.Get(ctx, collection, id)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", collection, err)
	}
	if doc == nil {
		return false, nil
	}
	current := NormalizeIDs(doc.Strings(field))
	if sameSet(current, next) {
		return false, nil
	}
	return s.writeIDs(ctx, collection, id, field, next)
}

func (s *LinkSynchronizer) writeIDs(ctx context.Context, collection, id, field string, ids []string) (bool, error) {
	err := s.store.Update(ctx, collection, id, repository.Document{
		field:                     ids,
		repository.FieldUpdatedAt: s.now().UTC(),
	})
	if errors.Is(err, domain.ErrNotFound) {
		// Borrado entre la lectura y la escritura: equivale a ausente.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update %s: %w", collection, err)
	}
	return true, nil
}

// addLink agrega primaryID a la lista del registro relacionado si aún no lo tiene.
func (s *LinkSynchronizer) addLink(ctx context.Context, side Side, relatedID, primaryID string) linkOutcome {
	out := linkOutcome{relatedID: relatedID, op: OpAdd}
	doc, err := s.store.Get(ctx, side.RelatedCollection, relatedID)
	if err != nil {
		out.err = fmt.Errorf("get %s: %w", side.RelatedCollection, err)
		return out
	}
	if doc == nil {
		out.missing = true
		return out
	}
	current := NormalizeIDs(doc.Strings(side.RelatedField))
	if contains(current, primaryID) {
		return out
	}
	written, err := s.writeIDs(ctx, side.RelatedCollection, relatedID, side.RelatedField, append(current, primaryID))
	out.written, out.err = written, err
	out.missing = err == nil && !written
	return out
}

// removeLink quita primaryID de la lista del registro relacionado. Con la misma verificación
// de conjuntos que el lado primario: si el id ya no estaba, no escribe.
func (s *LinkSynchronizer) removeLink(ctx context.Context, side Side, relatedID, primaryID string) linkOutcome {
	out := linkOutcome{relatedID: relatedID, op: OpRemove}
	doc, err := s.store.Get(ctx, side.RelatedCollection, relatedID)
	if err != nil {
		out.err = fmt.Errorf("get %s: %w", side.RelatedCollection, err)
		return out
	}
	if doc == nil {
		out.missing = true
		return out
	}
	current := NormalizeIDs(doc.Strings(side.RelatedField))
	filtered := without(current, primaryID)
	if sameSet(current, filtered) {
		return out
	}
	written, err := s.writeIDs(ctx, side.RelatedCollection, relatedID, side.RelatedField, filtered)
	out.written, out.err = written, err
	out.missing = err == nil && !written
	return out
}
