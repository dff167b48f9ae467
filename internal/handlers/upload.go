package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	appConfig "github.com/learnhub/learnhub-backend/internal/config"
	"github.com/learnhub/learnhub-backend/pkg/utils"
)

func getS3Client() (*s3.Client, error) {
	cfg := appConfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// UploadFile stores a multipart file under the given namespace and returns
// its public URL. Keys are namespaced and timestamped so repeated uploads
// of the same filename never collide.
func UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid file field found"})
		return
	}
	defer file.Close()

	namespace := c.DefaultQuery("folder", "uploads")
	key := fmt.Sprintf("%s/%d_%s", namespace, time.Now().UnixMilli(), utils.SanitizeFilename(header.Filename))

	client, err := getS3Client()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to init storage client"})
		return
	}

	cfg := appConfig.AppConfig
	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(cfg.R2BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
		return
	}

	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      fmt.Sprintf("%s/%s", publicURL, key),
		"key":      key,
		"mimetype": header.Header.Get("Content-Type"),
		"size":     header.Size,
	})
}

// Wrappers pin the storage namespace per asset kind.

func UploadCourseCover(c *gin.Context) {
	c.Request.URL.RawQuery = "folder=course-covers"
	UploadFile(c)
}

func UploadLessonVideo(c *gin.Context) {
	c.Request.URL.RawQuery = "folder=lesson-videos"
	UploadFile(c)
}

func UploadLessonMaterial(c *gin.Context) {
	c.Request.URL.RawQuery = "folder=lesson-materials"
	UploadFile(c)
}

func UploadProfilePhoto(c *gin.Context) {
	c.Request.URL.RawQuery = "folder=profile-photos"
	UploadFile(c)
}
