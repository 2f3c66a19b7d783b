package exec_commander

// Commander runs external configuration tools such as ifconfig(8).
type Commander interface {
	CombinedOutput(name string, args ...string) ([]byte, error)
	Output(name string, args ...string) ([]byte, error)
	Run(name string, args ...string) error
}
