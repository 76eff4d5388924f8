package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

const collectionLessons = "lessons"

type LessonRepository struct {
	col *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{col: db.Collection(collectionLessons)}
}

func (r *LessonRepository) Insert(ctx context.Context, l *domain.Lesson) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return fmt.Errorf("insert lesson: %w", err)
	}
	return nil
}

func (r *LessonRepository) FindByID(ctx context.Context, id string) (*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Lesson
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	return &l, nil
}

// ListByCourse returns the course's lessons ordered by order index.
func (r *LessonRepository) ListByCourse(ctx context.Context, courseID string) ([]*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order_index", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer cur.Close(ctx)

	var lessons []*domain.Lesson
	if err := cur.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, nil
}

func (r *LessonRepository) Update(ctx context.Context, l *domain.Lesson) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}

// Remove deletes the lesson and renumbers the survivors densely. Delete and
// renumber run in one transaction so a failed renumber rolls the delete back
// and readers never observe a gapped sequence.
func (r *LessonRepository) Remove(ctx context.Context, courseID, lessonID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.col.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": lessonID, "course_id": courseID})
		if err != nil {
			return nil, fmt.Errorf("delete lesson: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrLessonNotFound
		}

		survivors, err := r.ListByCourse(sc, courseID)
		if err != nil {
			return nil, err
		}
		domain.Renumber(survivors)
		return nil, r.writeOrder(sc, survivors)
	})
	return err
}

// ReplaceOrder rewrites the order indices so that orderedIDs[i] has index i.
func (r *LessonRepository) ReplaceOrder(ctx context.Context, courseID string, orderedIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id, "course_id": courseID}).
			SetUpdate(bson.M{"$set": bson.M{"order_index": i, "updated_at": time.Now().UTC()}}))
	}
	if len(models) == 0 {
		return nil
	}

	_, err := r.col.BulkWrite(ctx, models)
	if err != nil {
		return fmt.Errorf("replace lesson order: %w", err)
	}
	return nil
}

func (r *LessonRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return fmt.Errorf("delete lessons: %w", err)
	}
	return nil
}

// EnsureIndexes creates the index backing ordered per-course reads.
func (r *LessonRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "order_index", Value: 1}},
	})
	return err
}

func (r *LessonRepository) writeOrder(ctx context.Context, lessons []*domain.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(lessons))
	for _, l := range lessons {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": l.ID}).
			SetUpdate(bson.M{"$set": bson.M{"order_index": l.OrderIndex}}))
	}
	_, err := r.col.BulkWrite(ctx, models)
	if err != nil {
		return fmt.Errorf("renumber lessons: %w", err)
	}
	return nil
}
