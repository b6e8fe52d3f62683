package paramtree

import (
	"encoding/json"
	"errors"
	"fmt"
)

func ExampleTree_Set() {
	t := New(nil)
	_ = t.Set("db.host", "localhost")
	_ = t.Set("db.port", 5432)
	fmt.Println(t.Get("db.port", 0))
	fmt.Println(t.Keys())
	err := t.Set("db", "sqlite")
	fmt.Println(errors.Is(err, ErrValueExists))
	// Output:
	// 5432
	// [db.host db.port]
	// true
}

func ExampleTree_GetBranch() {
	t := New(nil)
	_ = t.Set("db.host", "localhost")
	db, err := t.GetBranch("db")
	if err != nil {
		panic(err)
	}
	_ = db.Set("user", "admin")
	fmt.Println(db.Path(), t.Get("db.user", nil))
	// Output:
	// db admin
}

func ExampleTree_MarshalJSON() {
	t := New(nil)
	_ = t.Set("name", "demo")
	_ = t.Set("servers", []string{"a", "b"})
	b, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(b))
	// Output:
	// {"name":"demo","servers":["a","b"]}
}

func ExampleTree_Find() {
	t, err := FromMap(Map{
		{"a", 1},
		{"b", Map{{"c", "x"}}},
	}, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(t.Find("x"))
	path, found := t.Find(int64(1))
	fmt.Printf("%q %v\n", path, found)
	// Output:
	// b.c true
	// "" false
}

func ExampleFromYAML() {
	t, err := FromYAML([]byte("server:\n  port: \"8080\"\n"), nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(t.GetInt("server.port", 0) + 1)
	// Output:
	// 8081
}
