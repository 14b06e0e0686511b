package store_test

import (
	"github.com/alexandre-normand/norrisbot/store"
	"github.com/stretchr/testify/assert"
	"io/ioutil"
	"os"
	"testing"
)

func TestNewLevelDBWithInvalidPath(t *testing.T) {
	tmpfile, err := ioutil.TempFile("", "example")
	assert.Nil(t, err)

	defer os.Remove(tmpfile.Name()) // clean up

	_, err = store.NewLevelDB("test", tmpfile.Name())
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "failed to open")
	}
}

func TestNewLevelDBStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "tmpTest")
	assert.Nil(t, err)

	defer os.RemoveAll(dir)

	ldb, err := store.NewLevelDB("test", dir)
	assert.Nil(t, err)
	defer ldb.Close()

	assert.Equal(t, "test", ldb.Name)
}

func TestGetAfterCloseShouldResultInError(t *testing.T) {
	dir, err := ioutil.TempDir("", "tmpTest")
	assert.Nil(t, err)

	defer os.RemoveAll(dir)

	ldb, err := store.NewLevelDB("test", dir)
	assert.Nil(t, err)

	ldb.Close()
	_, _, err = ldb.GetSetting("lastrun")

	assert.Error(t, err)
}

func TestGetMissingSettingIsNotAnError(t *testing.T) {
	dir, err := ioutil.TempDir("", "tmpTest")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	var settings store.SettingStorer

	settings, err = store.NewLevelDB("test", dir)
	assert.Nil(t, err)
	defer settings.Close()

	v, ok, err := settings.GetSetting("lastrun")
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestPutGetSetting(t *testing.T) {
	dir, err := ioutil.TempDir("", "tmpTest")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	ldb, err := store.NewLevelDB("test", dir)
	assert.Nil(t, err)
	defer ldb.Close()

	err = ldb.PutSetting("lastrun", "1567028237")
	assert.Nil(t, err)

	v, ok, err := ldb.GetSetting("lastrun")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1567028237", v)
}

func TestPutSettingIsIdempotent(t *testing.T) {
	dir, err := ioutil.TempDir("", "tmpTest")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	ldb, err := store.NewLevelDB("test", dir)
	assert.Nil(t, err)
	defer ldb.Close()

	err = ldb.PutSetting("lastrun", "1567028237")
	assert.Nil(t, err)
	err = ldb.PutSetting("lastrun", "1567028237")
	assert.Nil(t, err)

	m, err := ldb.Scan()
	assert.Nil(t, err)

	assert.Equal(t, map[string]string{"lastrun": "1567028237"}, m)
}
