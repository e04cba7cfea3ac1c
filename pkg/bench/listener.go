package bench

// ListenerLike receives the arena progress, every worker gets its own clone
type ListenerLike interface {
	OnStart()
	OnGameStart(info VersusWorkerInfo)
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(summary VersusSummaryInfo)
	OnEnd()
	SetRow(row int)
	Clone() ListenerLike
}

// Does nothing, embed it to implement only some of the callbacks
type DefaultListener struct {
	row int
}

func (d *DefaultListener) OnStart()                            {}
func (d *DefaultListener) OnGameStart(info VersusWorkerInfo)    {}
func (d *DefaultListener) OnMoveMade(info VersusWorkerInfo)     {}
func (d *DefaultListener) OnFinishedGame(info VersusWorkerInfo) {}
func (d *DefaultListener) OnFinishedWork(info VersusWorkerInfo) {}
func (d *DefaultListener) Summary(summary VersusSummaryInfo)    {}
func (d *DefaultListener) OnEnd()                               {}

func (d *DefaultListener) SetRow(row int) {
	d.row = row
}

func (d *DefaultListener) Row() int {
	return d.row
}

func (d *DefaultListener) Clone() ListenerLike {
	return &DefaultListener{row: d.row}
}
