package input

import "github.com/go-vgo/robotgo"

// RobotgoPointer drives the real OS cursor via robotgo. It satisfies
// engine.Pointer.
type RobotgoPointer struct{}

func (RobotgoPointer) MoveTo(x, y int) { robotgo.Move(x, y) }

func (RobotgoPointer) Position() (int, int) { return robotgo.Location() }

func (RobotgoPointer) ClickLeft() { robotgo.Click("left", false) }
