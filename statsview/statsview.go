package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/rc3200/cda/logger"
)

const Address = "localhost:12600"
const url = "/debug/statsview"

var once sync.Once

// URL returns the address of the statistics page
func URL() string {
	return fmt.Sprintf("http://%s%s", Address, url)
}

// Launch a new goroutine running the statsview. Only the first call has any
// effect
func Launch(output io.Writer) {
	once.Do(func() {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(Address))
			mgr := statsview.New()
			if err := mgr.Start(); err != nil {
				logger.Log(logger.Allow, "statsview", err)
			}
		}()
		fmt.Fprintf(output, "stats server available at %s\n", URL())
	})
}
