package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fittrack/fittrack-api/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table.
//
// Uniqueness of username, email and google_sub is enforced with marker items in
// the same table ("username#<v>", "email#<v>", "gsub#<v>" partition keys) written
// in one TransactWriteItems alongside the user row, each guarded by
// attribute_not_exists. Two racing registrations cannot both commit.
type UserRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepo(client *dynamodb.Client, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

func usernameMarker(username string) string { return "username#" + strings.ToLower(username) }
func emailMarker(email string) string       { return "email#" + strings.ToLower(email) }
func googleSubMarker(sub string) string     { return "gsub#" + sub }

// Create persists a new user together with its uniqueness markers. Returns
// domain.ErrDuplicateUsername or domain.ErrDuplicateEmail when a marker already
// exists; the caller cannot tell which racing writer won, only that it lost.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	notExists := aws.String("attribute_not_exists(user_id)")
	writes := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: notExists,
		}},
		{Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                markerItem(usernameMarker(u.Username), u.UserID),
			ConditionExpression: notExists,
		}},
		{Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                markerItem(emailMarker(u.Email), u.UserID),
			ConditionExpression: notExists,
		}},
	}
	if u.GoogleSub != "" {
		writes = append(writes, types.TransactWriteItem{Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                markerItem(googleSubMarker(u.GoogleSub), u.UserID),
			ConditionExpression: notExists,
		}})
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			// Reasons line up with the write order: user row, username, email, sub.
			for i, reason := range tce.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					switch i {
					case 1:
						return domain.ErrDuplicateUsername
					case 2:
						return domain.ErrDuplicateEmail
					default:
						return fmt.Errorf("user already exists: %w", domain.ErrConflict)
					}
				}
			}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func markerItem(markerID, userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: markerID},
		"ref":     &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getByMarker(ctx, usernameMarker(username))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByMarker(ctx, emailMarker(email))
}

func (r *UserRepo) GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error) {
	return r.getByMarker(ctx, googleSubMarker(sub))
}

// getByMarker resolves a uniqueness marker to the user row it references.
func (r *UserRepo) getByMarker(ctx context.Context, markerID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", markerID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	ref, ok := out.Item["ref"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("marker %s has no ref: %w", markerID, domain.ErrNotFound)
	}
	return r.Get(ctx, ref.Value)
}

func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("user_id", userID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// LinkGoogleSub claims the google_sub marker for an existing user and stores the
// sub on the row, atomically.
func (r *UserRepo) LinkGoogleSub(ctx context.Context, userID, sub string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"google_sub": sub,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:                 aws.String(r.tableName),
				Key:                       strKey("user_id", userID),
				UpdateExpression:          aws.String(ue.Expr),
				ExpressionAttributeNames:  ue.Names,
				ExpressionAttributeValues: ue.Values,
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                markerItem(googleSubMarker(sub), userID),
				ConditionExpression: aws.String("attribute_not_exists(user_id)"),
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return fmt.Errorf("google account already linked: %w", domain.ErrConflict)
		}
	}
	return err
}

// Delete removes the user row and its uniqueness markers.
func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	u, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	writes := []types.TransactWriteItem{
		{Delete: &types.Delete{TableName: aws.String(r.tableName), Key: strKey("user_id", userID)}},
		{Delete: &types.Delete{TableName: aws.String(r.tableName), Key: strKey("user_id", usernameMarker(u.Username))}},
		{Delete: &types.Delete{TableName: aws.String(r.tableName), Key: strKey("user_id", emailMarker(u.Email))}},
	}
	if u.GoogleSub != "" {
		writes = append(writes, types.TransactWriteItem{
			Delete: &types.Delete{TableName: aws.String(r.tableName), Key: strKey("user_id", googleSubMarker(u.GoogleSub))},
		})
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	return err
}
