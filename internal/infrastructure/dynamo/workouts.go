package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/fittrack/fittrack-api/internal/domain"
)

// WorkoutRepo provides typed DynamoDB operations for the workouts table.
// PK: workout_id. GSI user_id-workout_date-index serves the per-user,
// date-ranged queries the dashboard and calendar views run constantly.
type WorkoutRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewWorkoutRepo(client *dynamodb.Client, tableName string) *WorkoutRepo {
	return &WorkoutRepo{client: client, tableName: tableName}
}

func (r *WorkoutRepo) Put(ctx context.Context, w *domain.Workout) error {
	item, err := attributevalue.MarshalMap(w)
	if err != nil {
		return fmt.Errorf("marshal workout: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *WorkoutRepo) Get(ctx context.Context, workoutID string) (*domain.Workout, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("workout_id", workoutID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("workout not found: %w", domain.ErrNotFound)
	}
	var w domain.Workout
	if err := attributevalue.UnmarshalMap(out.Item, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListByUser returns the user's workouts with workout_date in [from, to]
// (inclusive, YYYY-MM-DD). Empty bounds list everything.
func (r *WorkoutRepo) ListByUser(ctx context.Context, userID, from, to string) ([]domain.Workout, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-workout_date-index"),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
	}
	if from != "" && to != "" {
		input.KeyConditionExpression = aws.String("user_id = :u AND workout_date BETWEEN :from AND :to")
		input.ExpressionAttributeValues[":from"] = &types.AttributeValueMemberS{Value: from}
		input.ExpressionAttributeValues[":to"] = &types.AttributeValueMemberS{Value: to}
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var workouts []domain.Workout
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// ListRecent returns the user's most recent workouts, newest first.
func (r *WorkoutRepo) ListRecent(ctx context.Context, userID string, limit int32) ([]domain.Workout, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-workout_date-index"),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}
	var workouts []domain.Workout
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *WorkoutRepo) Update(ctx context.Context, workoutID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("workout_id", workoutID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *WorkoutRepo) Delete(ctx context.Context, workoutID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("workout_id", workoutID),
	})
	return err
}
