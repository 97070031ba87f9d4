package main

import (
	"github.com/Toulouse790/myfitherov3-sub000/cmd"
)

func main() {
	cmd.Execute()
}
