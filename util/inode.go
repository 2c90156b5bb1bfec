package util

import (
	"errors"
	"sync"
)

// ErrInodeNotFound is returned when an inode was never handed out by
// GetNewInodeFor.
var ErrInodeNotFound = errors.New("inode not found in registry")

var (
	highestInode uint64 = 1 // 1 belongs to the mount root
	inodeNames          = map[uint64]string{}
	inodeLock           = sync.Mutex{}
)

// GetNewInodeFor allocates an unused inode number and remembers which name
// it serves.
func GetNewInodeFor(name string) uint64 {
	inodeLock.Lock()
	defer inodeLock.Unlock()
	highestInode++
	inodeNames[highestInode] = name
	return highestInode
}

// FileNameFromInode returns the name registered with GetNewInodeFor.
func FileNameFromInode(inode uint64) (string, error) {
	inodeLock.Lock()
	defer inodeLock.Unlock()
	name, ok := inodeNames[inode]
	if !ok {
		return "", ErrInodeNotFound
	}
	return name, nil
}
