package rtdf

type Station struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name    string `bson:",omitempty"`
	CityRef string `bson:",omitempty"`
}

type City struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name string `bson:",omitempty"`
}
