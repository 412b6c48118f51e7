package shell

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/domino14/reversi/board"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("reversi_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Exec runs a shell command line and returns its output, or a string
// starting with "ERROR: " if the command failed.
func Exec(L *lua.LState) int {
	line := L.ToString(1)
	sc := getShell(L)
	// exit from a script only ends the command, not the shell.
	sig := make(chan os.Signal, 1)
	r, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		log.Err(err).Str("line", line).Msg("error-executing-command")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

// Status returns a table describing the current position.
func Status(L *lua.LState) int {
	sc := getShell(L)
	b := sc.curBoard
	t := L.NewTable()
	t.RawSetString("turn", lua.LString(b.Turn().String()))
	t.RawSetString("x", lua.LNumber(b.CountDisks(board.Player0)))
	t.RawSetString("o", lua.LNumber(b.CountDisks(board.Player1)))
	t.RawSetString("finished", lua.LBool(b.IsFinished()))
	moves := L.NewTable()
	for _, m := range b.LegalMoves(b.Turn()) {
		moves.Append(lua.LString(m.String()))
	}
	t.RawSetString("moves", moves)
	L.Push(t)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("reversi_shell", lsc)
	L.SetGlobal("reversi_exec", L.NewFunction(Exec))
	L.SetGlobal("reversi_status", L.NewFunction(Status))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
