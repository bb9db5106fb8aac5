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

// ExerciseRepo provides typed DynamoDB operations for the exercise catalog.
// PK: exercise_id. GSI primary_muscle_group-index for the muscle filter. The
// catalog is small reference data, so the unfiltered list is a plain Scan.
type ExerciseRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewExerciseRepo(client *dynamodb.Client, tableName string) *ExerciseRepo {
	return &ExerciseRepo{client: client, tableName: tableName}
}

func (r *ExerciseRepo) Put(ctx context.Context, e *domain.Exercise) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal exercise: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ExerciseRepo) Get(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("exercise_id", exerciseID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("exercise not found: %w", domain.ErrNotFound)
	}
	var e domain.Exercise
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var exercises []domain.Exercise
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *ExerciseRepo) ListByMuscleGroup(ctx context.Context, muscleGroup string, limit int32) ([]domain.Exercise, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("primary_muscle_group-index"),
		KeyConditionExpression:    aws.String("primary_muscle_group = :m"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":m": &types.AttributeValueMemberS{Value: muscleGroup}},
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var exercises []domain.Exercise
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *ExerciseRepo) ListByDifficulty(ctx context.Context, difficulty string) ([]domain.Exercise, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String("difficulty_level = :d"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":d": &types.AttributeValueMemberS{Value: difficulty}},
	})
	if err != nil {
		return nil, err
	}
	var exercises []domain.Exercise
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}
