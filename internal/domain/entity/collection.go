package entity

// Collection names one of the persisted entity collections for bulk operations.
type Collection string

const (
	// CollectionTrees is the planted tree collection.
	CollectionTrees Collection = "trees"
	// CollectionGarbage is the garbage report collection.
	CollectionGarbage Collection = "garbage"
	// CollectionMissions is the teacher mission collection.
	CollectionMissions Collection = "missions"
)

// String returns the string representation of the Collection.
func (c Collection) String() string {
	return string(c)
}

// IsValid checks if the Collection is a valid value.
func (c Collection) IsValid() bool {
	switch c {
	case CollectionTrees, CollectionGarbage, CollectionMissions:
		return true
	default:
		return false
	}
}
