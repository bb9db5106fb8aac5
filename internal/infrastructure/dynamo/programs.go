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

// ProgramRepo provides typed DynamoDB operations for the fitness programs table.
// PK: program_id, GSI user_id-index. The weekly schedule is embedded in the item.
type ProgramRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProgramRepo(client *dynamodb.Client, tableName string) *ProgramRepo {
	return &ProgramRepo{client: client, tableName: tableName}
}

func (r *ProgramRepo) Put(ctx context.Context, p *domain.FitnessProgram) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal program: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ProgramRepo) Get(ctx context.Context, programID string) (*domain.FitnessProgram, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("program_id", programID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("program not found: %w", domain.ErrNotFound)
	}
	var p domain.FitnessProgram
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgramRepo) ListByUser(ctx context.Context, userID string) ([]domain.FitnessProgram, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": &types.AttributeValueMemberS{Value: userID}},
	})
	if err != nil {
		return nil, err
	}
	var programs []domain.FitnessProgram
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *ProgramRepo) Delete(ctx context.Context, programID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("program_id", programID),
	})
	return err
}
