package fixture

type Fixture struct{ Name string }
