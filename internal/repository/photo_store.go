package repository

import (
	"io"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// PhotoStore keeps photo binaries in GridFS, keyed by the file ID saved on
// the photo metadata row.
type PhotoStore struct {
	DB *mongo.Database
}

func NewPhotoStore(client *mongo.Client, dbName string) *PhotoStore {
	return &PhotoStore{DB: client.Database(dbName)}
}

// Upload streams the file into GridFS and returns its hex file ID.
func (s *PhotoStore) Upload(file multipart.File, filename string) (string, error) {
	bucket, err := gridfs.NewBucket(s.DB)
	if err != nil {
		return "", err
	}

	stream, err := bucket.OpenUploadStream(filename)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	if _, err := io.Copy(stream, file); err != nil {
		return "", err
	}

	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

// Download reads the file bytes back out of GridFS.
func (s *PhotoStore) Download(fileID string) ([]byte, error) {
	bucket, err := gridfs.NewBucket(s.DB)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, err
	}

	stream, err := bucket.OpenDownloadStream(objID)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return io.ReadAll(stream)
}
