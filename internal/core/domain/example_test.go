package domain_test

import (
	"fmt"

	"github.com/samirrijal/quadroute/internal/core/domain"
)

func ExampleTile_Path() {
	t := domain.Tile{X: 33791, Y: 43732, Zoom: 16}
	path, _ := t.Path("/")
	fmt.Println(path)
	fmt.Println(t.Quadkey())
	// Output:
	// /1/2/0/2/0/2/1/3/1/1/3/1/3/1/3/3
	// 1202021311313133
}

func ExampleParseQuadtreePath() {
	t, err := domain.ParseQuadtreePath(".2.1.1", ".")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(t)

	_, err = domain.ParseQuadtreePath("12405", "")
	fmt.Println(err)
	// Output:
	// <3, 3 (3)>
	// invalid quadtree path "12405": character '4' at 2 is not a digit 0-3
}

func ExampleRoutingKey_Format() {
	k := domain.RoutingKey{
		MessageType:    "DENM",
		MessageVersion: "1_2_2",
		Provider:       "RWS",
		Subtype:        "3",
		Tile:           domain.Tile{X: 3, Y: 3, Zoom: 3},
	}
	key, _ := k.Format()
	fmt.Println(key)
	// Output: DENM.1_2_2.RWS.3.2.1.1
}
