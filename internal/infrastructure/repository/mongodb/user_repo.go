package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcastillo/user-service/internal/domain/contract"
	"github.com/dcastillo/user-service/internal/domain/entity"
)

const userSequenceName = "users"

type MongoUserRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoUserRepository(collection, counters *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection, counters: counters}
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

// EnsureIndexes creates the unique index on identification. The index, not
// the registration pre-check, resolves races between duplicate registrations.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "identification", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateUser assigns the next sequence id and inserts the record.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	id, err := NextSequence(ctx, r.counters, userSequenceName)
	if err != nil {
		return err
	}
	user.ID = id
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetUserByIdentification(ctx context.Context, identification string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"identification": identification}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsersByName matches names containing the given substring,
// case-insensitively.
func (r *MongoUserRepository) SearchUsersByName(ctx context.Context, name string) ([]entity.User, error) {
	filter := bson.M{"name": bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// userUpdateDocument builds the update for a full-record write. Optional
// fields that are nil must be unset explicitly: a $set marshaled from the
// struct would omit them and leave stale values behind, so a cleared
// activation code would keep matching replayed activation links.
func userUpdateDocument(user *entity.User) bson.M {
	set := bson.M{
		"name":           user.Name,
		"identification": user.Identification,
		"phone":          user.Phone,
		"email":          user.Email,
		"password_hash":  user.PasswordHash,
		"rol":            user.Role,
		"first_access":   user.FirstAccess,
		"active":         user.Active,
		"created_at":     user.CreatedAt,
		"updated_at":     user.UpdatedAt,
	}
	unset := bson.M{}
	if user.Address != nil {
		set["address"] = user.Address
	} else {
		unset["address"] = ""
	}
	if user.Birthdate != nil {
		set["birthdate"] = user.Birthdate
	} else {
		unset["birthdate"] = ""
	}
	if user.ActivationCode != nil {
		set["activation_code"] = user.ActivationCode
	} else {
		unset["activation_code"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// UpdateUser replaces the stored record and returns the updated user.
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.UpdatedAt = time.Now()
	filter := bson.M{"_id": user.ID}
	update := userUpdateDocument(user)
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, entity.ErrUserAlreadyExists
		}
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, entity.ErrUserNotFound
	}
	var updatedUser entity.User
	if err := r.collection.FindOne(ctx, filter).Decode(&updatedUser); err != nil {
		return nil, err
	}
	return &updatedUser, nil
}

func (r *MongoUserRepository) UpdateUserPassword(ctx context.Context, id int64, hashedPassword string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"password_hash": hashedPassword, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}
