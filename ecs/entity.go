package ecs

import "strconv"

// Entity packs a slot id (low 32 bits) with the slot generation (high 32
// bits). A destroyed entity's handle stops matching once its slot is reused.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String formats e as id or id@generation, the way log lines print agents.
func (e Entity) String() string {
	s := strconv.FormatUint(uint64(e.id()), 10)
	if gen := e.generation(); gen > 0 {
		s += "@" + strconv.FormatUint(uint64(gen), 10)
	}
	return s
}

// Valid reports whether e could name an entity. The zero Entity never does.
func (e Entity) Valid() bool {
	return e.id() > 0
}
