package cubelut

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// probeScanLimit bounds the header scan; .cube headers are a handful
// of lines before the sample body starts.
const probeScanLimit = 64

// ProbeSize scans a .cube file for its LUT_3D_SIZE declaration. It
// never fails: on a missing file, missing keyword or unparseable
// argument it warns and returns DefaultSize.
func ProbeSize(path string) int {
	file, err := os.Open(path)
	if err != nil {
		logrus.WithError(err).Warnf("can't probe %s for LUT_3D_SIZE, assuming %d", path, DefaultSize)
		return DefaultSize
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for ln := 0; scanner.Scan() && ln < probeScanLimit; ln++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "LUT_3D_SIZE" {
			continue
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 2 {
			logrus.Warnf("invalid LUT_3D_SIZE %q in %s, assuming %d", fields[1], path, DefaultSize)
			return DefaultSize
		}
		return n
	}

	logrus.Warnf("no LUT_3D_SIZE found in %s, assuming %d", path, DefaultSize)
	return DefaultSize
}
