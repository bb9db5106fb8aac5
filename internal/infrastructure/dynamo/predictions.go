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

// PredictionRepo stores equipment-identification results.
// PK: prediction_id, GSI user_id-created_at-index (newest first listings).
type PredictionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPredictionRepo(client *dynamodb.Client, tableName string) *PredictionRepo {
	return &PredictionRepo{client: client, tableName: tableName}
}

func (r *PredictionRepo) Put(ctx context.Context, p *domain.Prediction) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PredictionRepo) ListByUser(ctx context.Context, userID string, limit int32) ([]domain.Prediction, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-created_at-index"),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
		ScanIndexForward:          aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var predictions []domain.Prediction
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}
