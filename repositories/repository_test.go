package repositories

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestCheckDeleted(t *testing.T) {
	assert.ErrorIs(t, checkDeleted(&mongo.DeleteResult{DeletedCount: 0}, nil), ErrNotFound)
	assert.NoError(t, checkDeleted(&mongo.DeleteResult{DeletedCount: 1}, nil))

	boom := errors.New("boom")
	assert.Equal(t, boom, checkDeleted(nil, boom))
}

func TestCheckMatched(t *testing.T) {
	assert.ErrorIs(t, checkMatched(&mongo.UpdateResult{MatchedCount: 0}, nil), ErrNotFound)
	assert.NoError(t, checkMatched(&mongo.UpdateResult{MatchedCount: 1}, nil))
}
