package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountModel mirrors a document in the 'donors' or 'receivers' collection.
// The collection an instance belongs to is decided by the account kind; both
// kinds share this document shape, receivers additionally carrying companyName.
// The password field always holds the bcrypt hash, never the plaintext.
type AccountModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" validate:"-"`
	Username    string             `bson:"username" validate:"required"`
	CompanyName string             `bson:"companyName,omitempty" validate:"-"`
	PhoneNumber string             `bson:"phoneNumber" validate:"required,len=10,numeric"`
	Password    string             `bson:"password" validate:"required"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}
