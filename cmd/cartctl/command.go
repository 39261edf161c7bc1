package main

import (
	"fmt"
	"strconv"
)

const (
	cmdList   = "list"
	cmdAdd    = "add"
	cmdRemove = "remove"
	cmdUpdate = "update"
)

type command struct {
	name      string
	productID int
	amount    int
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{name: cmdList}, nil
	}

	cmd := command{name: args[0]}
	want := map[string]int{cmdList: 1, cmdAdd: 2, cmdRemove: 2, cmdUpdate: 3}
	n, ok := want[cmd.name]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q", cmd.name)
	}
	if len(args) != n {
		return command{}, fmt.Errorf("%s: expected %d argument(s), got %d", cmd.name, n-1, len(args)-1)
	}

	var err error
	if n > 1 {
		if cmd.productID, err = strconv.Atoi(args[1]); err != nil {
			return command{}, fmt.Errorf("%s: invalid product id %q", cmd.name, args[1])
		}
	}
	if n > 2 {
		if cmd.amount, err = strconv.Atoi(args[2]); err != nil {
			return command{}, fmt.Errorf("%s: invalid amount %q", cmd.name, args[2])
		}
	}
	return cmd, nil
}
