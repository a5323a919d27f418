package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

func TestFromBSON_NormalizaTiposDelDriver(t *testing.T) {
	created := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	oid := primitive.NewObjectID()
	raw := bson.M{
		"_id":         oid,
		"name":        "Paneer Tikka",
		"categoryIds": primitive.A{"c1", "c2"},
		"createdAt":   primitive.NewDateTimeFromTime(created),
		"deliveryTime": bson.D{
			{Key: "value", Value: int32(30)},
			{Key: "unit", Value: "minutes"},
		},
	}

	doc := fromBSON(raw)

	assert.Equal(t, oid.Hex(), doc.String(repository.FieldID))
	assert.Equal(t, "Paneer Tikka", doc.String("name"))
	assert.Equal(t, []string{"c1", "c2"}, doc.Strings("categoryIds"))
	assert.True(t, created.Equal(doc.Time("createdAt")))
	assert.Equal(t, 30, doc.Map("deliveryTime").Int("value"))
	assert.Equal(t, "minutes", doc.Map("deliveryTime").String("unit"))
}

func TestToBSON_DescartaID(t *testing.T) {
	out := toBSON(repository.Document{repository.FieldID: "abc", "name": "Lassi"})
	assert.NotContains(t, out, repository.FieldID)
	assert.Equal(t, "Lassi", out["name"])
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "uuid-1", idString("uuid-1"))
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), idString(oid))
	assert.Equal(t, "42", idString(42))
}

func TestNormalize_Decimal128(t *testing.T) {
	d, err := primitive.ParseDecimal128("249.5")
	assert.NoError(t, err)
	assert.Equal(t, 249.5, normalize(d))
}

func TestIDFilter_IncluyeObjectIDParaIDsHex(t *testing.T) {
	oid := primitive.NewObjectID()

	legacy := idFilter(oid.Hex())
	assert.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{oid.Hex(), oid}}}, legacy)

	uuidLike := idFilter("8f14e45f-ceea-467a-9af0-2b1c5a3f0e11")
	assert.Equal(t, bson.M{"_id": "8f14e45f-ceea-467a-9af0-2b1c5a3f0e11"}, uuidLike)

	short := idFilter("abc")
	assert.Equal(t, bson.M{"_id": "abc"}, short)
}

func TestIDFilter_IDDevueltoPorLecturaVuelveAEncontrarElDocumento(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := fromBSON(bson.M{"_id": oid, "name": "Rasmalai"})

	filter := idFilter(doc.String(repository.FieldID))
	in := filter["_id"].(bson.M)["$in"].(bson.A)
	assert.Contains(t, in, oid)
}
