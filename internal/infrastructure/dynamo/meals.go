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

// MealRepo provides typed DynamoDB operations for the meals table.
// PK: meal_id. GSI user_id-meal_date-index for date-ranged listing.
type MealRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMealRepo(client *dynamodb.Client, tableName string) *MealRepo {
	return &MealRepo{client: client, tableName: tableName}
}

func (r *MealRepo) Put(ctx context.Context, m *domain.Meal) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal meal: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MealRepo) Get(ctx context.Context, mealID string) (*domain.Meal, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("meal_id", mealID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("meal not found: %w", domain.ErrNotFound)
	}
	var m domain.Meal
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser returns the user's meals with meal_date in [from, to] (inclusive).
// Empty bounds list everything.
func (r *MealRepo) ListByUser(ctx context.Context, userID, from, to string) ([]domain.Meal, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-meal_date-index"),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
	}
	if from != "" && to != "" {
		input.KeyConditionExpression = aws.String("user_id = :u AND meal_date BETWEEN :from AND :to")
		input.ExpressionAttributeValues[":from"] = &types.AttributeValueMemberS{Value: from}
		input.ExpressionAttributeValues[":to"] = &types.AttributeValueMemberS{Value: to}
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var meals []domain.Meal
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *MealRepo) Update(ctx context.Context, mealID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("meal_id", mealID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *MealRepo) Delete(ctx context.Context, mealID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("meal_id", mealID),
	})
	return err
}
