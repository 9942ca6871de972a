package model

// User represents an account document in the `users` collection.  The
// userID field is the natural key (enforced unique by an index created at
// startup), not the Mongo ObjectID, so documents are addressed the same way
// clients address them in URLs.
//
// Fields:
//  UserID          – unique, immutable account identifier.
//  IsAdministrator – role flag; true grants unrestricted access.
//  Password        – bcrypt hash of the account password.  Never serialized
//                    into API responses.
//  FirstName       – optional display name.
//  LastName        – optional display name.
type User struct {
	UserID          string `bson:"userID" json:"userID"`
	IsAdministrator bool   `bson:"isAdministrator" json:"isAdministrator"`
	Password        string `bson:"password" json:"-"`
	FirstName       string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName        string `bson:"lastName,omitempty" json:"lastName,omitempty"`
}
