package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkwell/models"
)

// MongoPostStore implements PostStore over a MongoDB collection.
type MongoPostStore struct {
	coll *mongo.Collection
}

var (
	_ PostStore    = (*MongoPostStore)(nil)
	_ CommentStore = (*MongoCommentStore)(nil)
)

func NewMongoPostStore(coll *mongo.Collection) *MongoPostStore {
	return &MongoPostStore{coll: coll}
}

func toBSON(f PostFilter) bson.M {
	query := bson.M{}

	if f.Status != "" {
		query["status"] = f.Status
	}

	if f.CreatedFrom != nil || f.CreatedTo != nil {
		window := bson.M{}
		if f.CreatedFrom != nil {
			window["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			window["$lt"] = *f.CreatedTo
		}
		query["createdAt"] = window
	}

	if f.Category != "" {
		query["category"] = primitive.Regex{Pattern: f.Category, Options: "i"}
	}
	if f.CategoryExact != "" {
		query["category"] = f.CategoryExact
	}

	if f.SearchTerm != "" {
		query["$or"] = bson.A{
			bson.M{"title": primitive.Regex{Pattern: f.SearchTerm, Options: "i"}},
			bson.M{"content": primitive.Regex{Pattern: f.SearchTerm, Options: "i"}},
		}
	}

	if f.AuthorID != "" {
		query["authorId"] = f.AuthorID
	}
	if f.Slug != "" {
		query["slug"] = f.Slug
	}
	if f.Title != "" {
		query["title"] = f.Title
	}
	if f.PostID != "" {
		// A malformed id yields the zero ObjectID, which matches nothing.
		oid, _ := primitive.ObjectIDFromHex(f.PostID)
		query["_id"] = oid
	}
	if f.BookmarkedBy != "" {
		query["bookmarks"] = f.BookmarkedBy
	}

	return query
}

func sortDoc(s SortSpec) bson.D {
	dir := 1
	if s.Descending {
		dir = -1
	}
	return bson.D{{Key: s.Field, Value: dir}}
}

func (s *MongoPostStore) Find(ctx context.Context, filter PostFilter, sort SortSpec, page Page) ([]models.Post, error) {
	opts := options.Find().SetSort(sortDoc(sort)).SetSkip(page.Skip)
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}

	cursor, err := s.coll.Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) FindOne(ctx context.Context, filter PostFilter) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, toBSON(filter)).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) Count(ctx context.Context, filter PostFilter) (int64, error) {
	return s.coll.CountDocuments(ctx, toBSON(filter))
}

func (s *MongoPostStore) Insert(ctx context.Context, post *models.Post) (string, error) {
	res, err := s.coll.InsertOne(ctx, post)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	post.ID = oid
	return oid.Hex(), nil
}

func (s *MongoPostStore) Update(ctx context.Context, id string, patch PostPatch) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Document != nil {
		set["document"] = *patch.Document
	}

	after := options.After
	var post models.Post
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after)).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) setFields(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	set["updatedAt"] = time.Now()
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) SetStatus(ctx context.Context, id string, status string) error {
	return s.setFields(ctx, id, bson.M{"status": status})
}

func (s *MongoPostStore) SetLikes(ctx context.Context, id string, likes []string, numberOfLikes int) error {
	return s.setFields(ctx, id, bson.M{"likes": likes, "numberOfLikes": numberOfLikes})
}

func (s *MongoPostStore) SetBookmarks(ctx context.Context, id string, bookmarks []string) error {
	return s.setFields(ctx, id, bson.M{"bookmarks": bookmarks})
}

func (s *MongoPostStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoCommentStore implements CommentStore over a MongoDB collection.
type MongoCommentStore struct {
	coll *mongo.Collection
}

func NewMongoCommentStore(coll *mongo.Collection) *MongoCommentStore {
	return &MongoCommentStore{coll: coll}
}

func (s *MongoCommentStore) Insert(ctx context.Context, comment *models.Comment) (string, error) {
	res, err := s.coll.InsertOne(ctx, comment)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	comment.ID = oid
	return oid.Hex(), nil
}

func (s *MongoCommentStore) FindByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"postId": postID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *MongoCommentStore) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
