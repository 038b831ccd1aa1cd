package main

// navigator records where a submission asked to go. Only the first request is kept.
type navigator struct {
	paths chan string
}

func newNavigator() *navigator {
	return &navigator{paths: make(chan string, 1)}
}

func (n *navigator) Navigate(path string) {
	select {
	case n.paths <- path:
	default:
	}
}
