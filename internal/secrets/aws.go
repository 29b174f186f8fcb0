package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

const versionStage = "AWSCURRENT"

// AWSReader reads secret strings from AWS Secrets Manager.
type AWSReader struct {
	client secretsmanageriface.SecretsManagerAPI
}

func NewAWSReader(region string) (*AWSReader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &AWSReader{client: secretsmanager.New(sess)}, nil
}

func (r *AWSReader) GetSecret(ctx context.Context, id string) (string, error) {
	out, err := r.client.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(id),
		VersionStage: aws.String(versionStage),
	})
	if err != nil {
		return "", err
	}
	if out.SecretString == nil {
		return "", errors.New("secret has no string value")
	}
	return aws.StringValue(out.SecretString), nil
}
