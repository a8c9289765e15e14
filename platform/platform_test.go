package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		osRelease string
		family    string
	}{
		{
			name:      "rocky via ID_LIKE",
			osRelease: "NAME=\"Rocky Linux\"\nID=\"rocky\"\nID_LIKE=\"rhel centos fedora\"\n",
			family:    "rhel",
		},
		{
			name:      "plain rhel",
			osRelease: "ID=\"rhel\"\n",
			family:    "rhel",
		},
		{
			name:      "ubuntu via ID_LIKE",
			osRelease: "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n",
			family:    "debian",
		},
		{
			name:      "debian without ID_LIKE",
			osRelease: "ID=debian\n",
			family:    "debian",
		},
		{
			name:      "comments and blank lines are ignored",
			osRelease: "# generated\n\nID=centos\n",
			family:    "rhel",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			plat, err := classify(strings.NewReader(c.osRelease))
			require.NoError(t, err)
			assert.Equal(t, c.family, plat.Name())
		})
	}
}

func TestClassifyUnsupported(t *testing.T) {
	_, err := classify(strings.NewReader("ID=arch\nID_LIKE=\"\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported OS")
}
